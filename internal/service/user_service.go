package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"clinix/internal/cache"
	"clinix/internal/errors"
	"clinix/internal/model"
	"clinix/internal/repository"
	"clinix/internal/storage"
)

// ProfileUpdate is a presence-based patch: a nil field is untouched, a
// present field is applied even when empty. Name is the one field that
// may never be blanked.
type ProfileUpdate struct {
	Name          *string
	Phone         *string
	Specialty     *string
	Experience    *int
	Bio           *string
	Location      *string
	Education     *string
	LicenseNumber *string
}

// UserService handles the caller's own profile.
type UserService interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileUpdate) (*model.User, error)
	UploadPhoto(ctx context.Context, id uuid.UUID, filename string, r io.Reader) (*model.User, error)
	DeletePhoto(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type userService struct {
	users  repository.UserRepository
	photos storage.Store
	cache  *cache.Client
}

// NewUserService creates a new profile service.
func NewUserService(users repository.UserRepository, photos storage.Store, cache *cache.Client) UserService {
	return &userService{users: users, photos: photos, cache: cache}
}

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileUpdate) (*model.User, error) {
	user, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, errors.ErrNameRequired
		}
		user.Name = *in.Name
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Specialty != nil {
		user.Specialty = *in.Specialty
	}
	if in.Experience != nil {
		user.Experience = *in.Experience
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.Location != nil {
		user.Location = *in.Location
	}
	if in.Education != nil {
		user.Education = *in.Education
	}
	if in.LicenseNumber != nil {
		user.LicenseNumber = *in.LicenseNumber
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if user.IsDoctor() {
		invalidateDoctorDirectory(ctx, s.cache)
	}
	return user, nil
}

// UploadPhoto stores the new photo, then removes the previous one
// best-effort: a failed cleanup is logged, never surfaced.
func (s *userService) UploadPhoto(ctx context.Context, id uuid.UUID, filename string, r io.Reader) (*model.User, error) {
	user, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.photos.Save(ctx, filename, r)
	if err != nil {
		return nil, fmt.Errorf("store photo: %w", err)
	}

	if user.ProfilePhoto != nil {
		if err := s.photos.Delete(ctx, *user.ProfilePhoto); err != nil {
			log.Warn().Err(err).Str("url", *user.ProfilePhoto).Msg("could not delete previous profile photo")
		}
	}

	user.ProfilePhoto = &url
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if user.IsDoctor() {
		invalidateDoctorDirectory(ctx, s.cache)
	}
	return user, nil
}

// DeletePhoto clears the reference; removing the stored object is
// best-effort like the upload path.
func (s *userService) DeletePhoto(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.ProfilePhoto != nil {
		if err := s.photos.Delete(ctx, *user.ProfilePhoto); err != nil {
			log.Warn().Err(err).Str("url", *user.ProfilePhoto).Msg("could not delete profile photo")
		}
		user.ProfilePhoto = nil
		if err := s.users.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		if user.IsDoctor() {
			invalidateDoctorDirectory(ctx, s.cache)
		}
	}
	return user, nil
}
