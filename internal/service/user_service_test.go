package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"clinix/internal/errors"
	"clinix/internal/model"
	"clinix/internal/storage"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestUserService_UpdateProfile(t *testing.T) {
	userID := uuid.New()

	t.Run("absent fields are untouched", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		user := &model.User{ID: userID, Name: "Dr. Sarah Johnson", Role: model.RoleDoctor, Specialty: "Cardiology", Bio: "Existing bio"}
		mockRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
		mockRepo.On("Update", mock.Anything, user).Return(nil)

		svc := NewUserService(mockRepo, storage.NewMemoryStore(), nil)
		got, err := svc.UpdateProfile(context.Background(), userID, ProfileUpdate{
			Phone:      strPtr("+1234567890"),
			Experience: intPtr(13),
		})

		assert.NoError(t, err)
		assert.Equal(t, "+1234567890", got.Phone)
		assert.Equal(t, 13, got.Experience)
		assert.Equal(t, "Existing bio", got.Bio)
		assert.Equal(t, "Dr. Sarah Johnson", got.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("present empty field clears it", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		user := &model.User{ID: userID, Name: "John Doe", Role: model.RolePatient, Bio: "Old bio"}
		mockRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
		mockRepo.On("Update", mock.Anything, user).Return(nil)

		svc := NewUserService(mockRepo, storage.NewMemoryStore(), nil)
		got, err := svc.UpdateProfile(context.Background(), userID, ProfileUpdate{Bio: strPtr("")})

		assert.NoError(t, err)
		assert.Empty(t, got.Bio)
		mockRepo.AssertExpectations(t)
	})

	t.Run("name may not be blanked", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		user := &model.User{ID: userID, Name: "John Doe", Role: model.RolePatient}
		mockRepo.On("FindByID", mock.Anything, userID).Return(user, nil)

		svc := NewUserService(mockRepo, storage.NewMemoryStore(), nil)
		_, err := svc.UpdateProfile(context.Background(), userID, ProfileUpdate{Name: strPtr("   ")})

		assert.Equal(t, errors.ErrNameRequired, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(mockRepo, storage.NewMemoryStore(), nil)
		_, err := svc.UpdateProfile(context.Background(), userID, ProfileUpdate{Name: strPtr("New Name")})

		assert.Equal(t, errors.ErrUserNotFound, err)
	})
}

func TestUserService_UploadPhoto(t *testing.T) {
	userID := uuid.New()

	t.Run("first upload sets the reference", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		user := &model.User{ID: userID, Name: "John Doe", Role: model.RolePatient}
		mockRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
		mockRepo.On("Update", mock.Anything, user).Return(nil)

		svc := NewUserService(mockRepo, storage.NewMemoryStore(), nil)
		got, err := svc.UploadPhoto(context.Background(), userID, "avatar.png", strings.NewReader("imagedata"))

		assert.NoError(t, err)
		assert.NotNil(t, got.ProfilePhoto)
		mockRepo.AssertExpectations(t)
	})

	t.Run("replacement deletes the previous photo", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockStore := new(MockStore)
		old := "memory://old"
		user := &model.User{ID: userID, Name: "John Doe", Role: model.RolePatient, ProfilePhoto: &old}
		mockRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
		mockRepo.On("Update", mock.Anything, user).Return(nil)
		mockStore.On("Save", mock.Anything, "new.png", mock.Anything).Return("memory://new", nil)
		mockStore.On("Delete", mock.Anything, "memory://old").Return(nil)

		svc := NewUserService(mockRepo, mockStore, nil)
		got, err := svc.UploadPhoto(context.Background(), userID, "new.png", strings.NewReader("imagedata"))

		assert.NoError(t, err)
		assert.Equal(t, "memory://new", *got.ProfilePhoto)
		mockStore.AssertExpectations(t)
	})

	t.Run("failed cleanup of the old photo is not surfaced", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockStore := new(MockStore)
		old := "memory://gone"
		user := &model.User{ID: userID, Name: "John Doe", Role: model.RolePatient, ProfilePhoto: &old}
		mockRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
		mockRepo.On("Update", mock.Anything, user).Return(nil)
		mockStore.On("Save", mock.Anything, "new.png", mock.Anything).Return("memory://new", nil)
		mockStore.On("Delete", mock.Anything, "memory://gone").Return(storage.ErrObjectNotFound)

		svc := NewUserService(mockRepo, mockStore, nil)
		got, err := svc.UploadPhoto(context.Background(), userID, "new.png", strings.NewReader("imagedata"))

		assert.NoError(t, err)
		assert.Equal(t, "memory://new", *got.ProfilePhoto)
	})
}

func TestUserService_DeletePhoto(t *testing.T) {
	userID := uuid.New()

	t.Run("clears the reference", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockStore := new(MockStore)
		old := "memory://photo"
		user := &model.User{ID: userID, Name: "John Doe", Role: model.RolePatient, ProfilePhoto: &old}
		mockRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
		mockRepo.On("Update", mock.Anything, user).Return(nil)
		mockStore.On("Delete", mock.Anything, "memory://photo").Return(nil)

		svc := NewUserService(mockRepo, mockStore, nil)
		got, err := svc.DeletePhoto(context.Background(), userID)

		assert.NoError(t, err)
		assert.Nil(t, got.ProfilePhoto)
		mockStore.AssertExpectations(t)
	})

	t.Run("no photo is a no-op", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockStore := new(MockStore)
		user := &model.User{ID: userID, Name: "John Doe", Role: model.RolePatient}
		mockRepo.On("FindByID", mock.Anything, userID).Return(user, nil)

		svc := NewUserService(mockRepo, mockStore, nil)
		got, err := svc.DeletePhoto(context.Background(), userID)

		assert.NoError(t, err)
		assert.Nil(t, got.ProfilePhoto)
		mockRepo.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})
}
