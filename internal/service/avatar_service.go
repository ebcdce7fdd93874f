package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"path/filepath"

	"skillshare/internal/models"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultAvatarUploadDir = "/tmp/skillshare/uploads/avatars"
	AvatarSize             = 512
	AvatarWebPQuality      = 75
)

// AvatarService stores profile pictures. Uploads are normalized to a
// square WebP so every client gets a predictable asset.
type AvatarService struct {
	uploadDir string
	maxBytes  int64
	userSvc   *UserService
}

func NewAvatarService(uploadDir string, maxUploadSizeMB int, userSvc *UserService) *AvatarService {
	if uploadDir == "" {
		uploadDir = DefaultAvatarUploadDir
	}
	return &AvatarService{
		uploadDir: uploadDir,
		maxBytes:  int64(maxUploadSizeMB) << 20,
		userSvc:   userSvc,
	}
}

// Upload decodes, crops, resizes, and stores an avatar, then points the
// user's profile at it. Returns the stored relative path.
func (s *AvatarService) Upload(ctx context.Context, userID string, data []byte) (string, error) {
	if int64(len(data)) > s.maxBytes {
		return "", models.NewValidationError(fmt.Sprintf("Avatar exceeds the %dMB upload limit", s.maxBytes>>20))
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", models.NewValidationError("Unsupported or corrupt image")
	}

	normalized := normalizeAvatar(src)

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, normalized, &webp.Options{Quality: AvatarWebPQuality}); err != nil {
		return "", models.NewInternalError(err)
	}

	rel := filepath.Join(userID, uuid.NewString()+".webp")
	abs := filepath.Join(s.uploadDir, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", models.NewInternalError(err)
	}
	if err := os.WriteFile(abs, buf.Bytes(), 0o644); err != nil {
		return "", models.NewInternalError(err)
	}

	if _, err := s.userSvc.UpdateProfile(ctx, UpdateProfileInput{
		UserID:            userID,
		ProfilePictureURL: "/uploads/avatars/" + filepath.ToSlash(rel),
	}); err != nil {
		return "", err
	}

	return rel, nil
}

// normalizeAvatar center-crops to a square and scales to AvatarSize.
func normalizeAvatar(src image.Image) image.Image {
	b := src.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	crop := image.Rect(x0, y0, x0+side, y0+side)

	dst := image.NewRGBA(image.Rect(0, 0, AvatarSize, AvatarSize))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, xdraw.Over, nil)
	return dst
}
