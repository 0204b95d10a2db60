package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clinix/internal/cache"
	"clinix/internal/errors"
	"clinix/internal/model"
	"clinix/internal/repository"
)

// The unfiltered directory is the hot path for both clients' home
// screens, so only that listing is cached; filtered queries go straight
// to the database.
const (
	doctorDirectoryKey = "doctors:all"
	doctorDirectoryTTL = 5 * time.Minute
)

// DoctorService serves the doctor directory.
type DoctorService interface {
	ListDoctors(ctx context.Context, specialty, search string) ([]model.User, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type doctorService struct {
	users repository.UserRepository
	cache *cache.Client
}

// NewDoctorService creates a new doctor directory service.
func NewDoctorService(users repository.UserRepository, cache *cache.Client) DoctorService {
	return &doctorService{users: users, cache: cache}
}

// ListDoctors returns doctors sorted by name, narrowed by optional
// case-insensitive substring filters on specialty and name.
func (s *doctorService) ListDoctors(ctx context.Context, specialty, search string) ([]model.User, error) {
	if specialty == "" && search == "" {
		if data, _ := s.cache.Get(ctx, doctorDirectoryKey); data != nil {
			var cached []model.User
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	doctors, err := s.users.ListDoctors(ctx, specialty, search)
	if err != nil {
		return nil, err
	}

	if specialty == "" && search == "" {
		if payload, err := json.Marshal(doctors); err == nil {
			_ = s.cache.Set(ctx, doctorDirectoryKey, payload, doctorDirectoryTTL)
		}
	}
	return doctors, nil
}

// GetDoctor looks up a single doctor; ids belonging to patients are
// not found, not forbidden.
func (s *doctorService) GetDoctor(ctx context.Context, id uuid.UUID) (*model.User, error) {
	doctor, err := s.users.FindDoctorByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrDoctorNotFound
		}
		return nil, err
	}
	return doctor, nil
}

// invalidateDoctorDirectory drops the cached listing after any write
// that could change it. Shared with the profile service.
func invalidateDoctorDirectory(ctx context.Context, c *cache.Client) {
	_ = c.Delete(ctx, doctorDirectoryKey)
}
