package service

import (
	"context"

	"skillshare/internal/models"
	"skillshare/internal/repository"
	"skillshare/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID            string
	FullName          string
	ProfilePictureURL string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile creates or replaces the caller's profile.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.FullName != "" {
		if err := validation.ValidateDisplayName(in.FullName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}

	profile := &models.UserProfile{
		UserID:            user.ID,
		FullName:          in.FullName,
		ProfilePictureURL: in.ProfilePictureURL,
	}
	if user.Profile != nil {
		if in.FullName == "" {
			profile.FullName = user.Profile.FullName
		}
		if in.ProfilePictureURL == "" {
			profile.ProfilePictureURL = user.Profile.ProfilePictureURL
		}
	}

	if err := s.userRepo.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}

	user.Profile = profile
	return user, nil
}
