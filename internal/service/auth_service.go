package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"clinix/internal/auth"
	"clinix/internal/errors"
	"clinix/internal/model"
	"clinix/internal/repository"
)

const bcryptCost = 10

// RegisterInput carries a registration request.
type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	Role      string
	Phone     string
	Specialty string
}

// AuthService handles registration, login, and invite redemption.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	AcceptInvite(ctx context.Context, token, password string) (*model.User, string, error)
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
	invites    auth.InviteStore
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService, invites auth.InviteStore) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		invites:    invites,
	}
}

// Register creates a user with a hashed password and issues a
// credential. Doctors must carry a specialty; a taken email is a
// validation failure, never a second record.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	if in.Role == model.RoleDoctor && in.Specialty == "" {
		return nil, "", errors.ErrSpecialtyRequired
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, "", errors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, "", fmt.Errorf("check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hashed),
		Role:         in.Role,
		Phone:        in.Phone,
		Specialty:    in.Specialty,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

// Login authenticates a user and issues a credential. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

// AcceptInvite consumes a one-time invite token, sets the patient's
// password, and logs them in.
func (s *authService) AcceptInvite(ctx context.Context, token, password string) (*model.User, string, error) {
	userID, err := s.invites.RedeemInvite(ctx, token)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, "", errors.ErrInvalidInvite
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashed)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, "", fmt.Errorf("update user: %w", err)
	}

	jwtToken, err := s.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, jwtToken, nil
}
