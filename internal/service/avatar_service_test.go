package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"skillshare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestAvatarService_Upload(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id string) (*models.User, error) {
		return &models.User{ID: id, Email: "ada@example.com"}, nil
	}
	var upserted *models.UserProfile
	userRepo.upsertProfileFn = func(_ context.Context, p *models.UserProfile) error {
		upserted = p
		return nil
	}

	dir := t.TempDir()
	svc := NewAvatarService(dir, 5, NewUserService(userRepo))

	rel, err := svc.Upload(context.Background(), "u-1", pngBytes(t, 300, 200))
	require.NoError(t, err)
	assert.Equal(t, ".webp", filepath.Ext(rel))

	require.NotNil(t, upserted)
	assert.Contains(t, upserted.ProfilePictureURL, "/uploads/avatars/u-1/")

	assert.FileExists(t, filepath.Join(dir, rel))
}

func TestAvatarService_Upload_Rejections(t *testing.T) {
	svc := NewAvatarService(t.TempDir(), 1, NewUserService(noopUserRepo()))

	_, err := svc.Upload(context.Background(), "u-1", []byte("not an image"))
	assertAppErrorCode(t, err, "VALIDATION_ERROR")

	huge := make([]byte, 2<<20)
	_, err = svc.Upload(context.Background(), "u-1", huge)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestNormalizeAvatarSquare(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 640, 480))
	out := normalizeAvatar(src)

	b := out.Bounds()
	assert.Equal(t, AvatarSize, b.Dx())
	assert.Equal(t, AvatarSize, b.Dy())
}
