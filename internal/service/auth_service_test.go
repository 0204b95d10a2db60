package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"clinix/internal/auth"
	"clinix/internal/errors"
	"clinix/internal/model"
)

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		input         RegisterInput
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "successful patient registration",
			input: RegisterInput{
				Name:     "John Doe",
				Email:    "john.doe@example.com",
				Password: "patient123",
				Role:     model.RolePatient,
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "john.doe@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name: "successful doctor registration",
			input: RegisterInput{
				Name:      "Dr. Sarah Johnson",
				Email:     "sarah.johnson@clinix.com",
				Password:  "doctor123",
				Role:      model.RoleDoctor,
				Specialty: "Cardiology",
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "sarah.johnson@clinix.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name: "doctor without specialty",
			input: RegisterInput{
				Name:     "Dr. No Specialty",
				Email:    "no.specialty@clinix.com",
				Password: "doctor123",
				Role:     model.RoleDoctor,
			},
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrSpecialtyRequired,
		},
		{
			name: "email already taken",
			input: RegisterInput{
				Name:     "Duplicate",
				Email:    "taken@example.com",
				Password: "patient123",
				Role:     model.RolePatient,
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{Email: "taken@example.com"}, nil)
			},
			expectedError: errors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockInviteStore))
			user, token, err := svc.Register(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, token)
				assert.Equal(t, tt.input.Email, user.Email)
				assert.Equal(t, tt.input.Role, user.Role)
				assert.NotEqual(t, tt.input.Password, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("patient123"), bcryptCost)
	existing := &model.User{
		ID:           uuid.New(),
		Email:        "john.doe@example.com",
		PasswordHash: string(hashed),
		Role:         model.RolePatient,
	}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "john.doe@example.com",
			password: "patient123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "john.doe@example.com").Return(existing, nil)
			},
		},
		{
			name:     "wrong password",
			email:    "john.doe@example.com",
			password: "wrong",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "john.doe@example.com").Return(existing, nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "patient123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockInviteStore))
			user, token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEmpty(t, token)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_AcceptInvite(t *testing.T) {
	userID := uuid.New()
	oldHash, _ := bcrypt.GenerateFromPassword([]byte("provisional"), bcryptCost)

	t.Run("successful redemption", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockInvites := new(MockInviteStore)

		invited := &model.User{ID: userID, Email: "jane.smith@example.com", Role: model.RolePatient, PasswordHash: string(oldHash)}
		mockInvites.On("RedeemInvite", mock.Anything, "invite-token").Return(userID, nil)
		mockRepo.On("FindByID", mock.Anything, userID).Return(invited, nil)
		mockRepo.On("Update", mock.Anything, invited).Return(nil)

		svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), mockInvites)
		user, token, err := svc.AcceptInvite(context.Background(), "invite-token", "newpassword")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpassword")))
		mockRepo.AssertExpectations(t)
		mockInvites.AssertExpectations(t)
	})

	t.Run("invalid token", func(t *testing.T) {
		mockInvites := new(MockInviteStore)
		mockInvites.On("RedeemInvite", mock.Anything, "bogus").Return(uuid.Nil, errors.ErrInvalidInvite)

		svc := NewAuthService(new(MockUserRepository), auth.NewJWTService("test-secret"), mockInvites)
		user, _, err := svc.AcceptInvite(context.Background(), "bogus", "newpassword")

		assert.Equal(t, errors.ErrInvalidInvite, err)
		assert.Nil(t, user)
	})

	t.Run("redeemed user missing", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockInvites := new(MockInviteStore)
		mockInvites.On("RedeemInvite", mock.Anything, "orphan").Return(userID, nil)
		mockRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), mockInvites)
		_, _, err := svc.AcceptInvite(context.Background(), "orphan", "newpassword")

		assert.Equal(t, errors.ErrInvalidInvite, err)
	})
}
