package service

import (
	"context"
	"testing"

	"skillshare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_UpdateProfile(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id string) (*models.User, error) {
		return &models.User{
			ID:    id,
			Email: "ada@example.com",
			Profile: &models.UserProfile{
				UserID:            id,
				FullName:          "Ada Lovelace",
				ProfilePictureURL: "https://cdn.example.com/old.webp",
			},
		}, nil
	}
	var upserted *models.UserProfile
	userRepo.upsertProfileFn = func(_ context.Context, p *models.UserProfile) error {
		upserted = p
		return nil
	}
	svc := NewUserService(userRepo)

	user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:   "u-1",
		FullName: "Ada King",
	})
	require.NoError(t, err)
	require.NotNil(t, upserted)

	// An empty field keeps the stored value.
	assert.Equal(t, "Ada King", user.Profile.FullName)
	assert.Equal(t, "https://cdn.example.com/old.webp", user.Profile.ProfilePictureURL)
}

func TestUserService_UpdateProfile_UnknownUser(t *testing.T) {
	svc := NewUserService(noopUserRepo())

	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: "ghost"})
	assertAppErrorCode(t, err, "NOT_FOUND")
}
