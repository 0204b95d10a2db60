package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clinix/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindDoctorByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListDoctors(ctx context.Context, specialty, search string) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindDoctorByID is the role-scoped lookup backing the doctor
// directory: ids belonging to patients come back as not found.
func (r *userRepository) FindDoctorByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, model.RoleDoctor).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListDoctors returns doctors sorted by name, optionally narrowed by
// case-insensitive substring match on specialty and/or name.
func (r *userRepository) ListDoctors(ctx context.Context, specialty, search string) ([]model.User, error) {
	q := r.db.WithContext(ctx).Where("role = ?", model.RoleDoctor)
	if specialty != "" {
		q = q.Where("LOWER(specialty) LIKE ?", "%"+strings.ToLower(specialty)+"%")
	}
	if search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	var doctors []model.User
	if err := q.Order("name ASC").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}
