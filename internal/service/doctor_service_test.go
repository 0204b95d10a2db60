package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"clinix/internal/errors"
	"clinix/internal/model"
)

func TestDoctorService_ListDoctors(t *testing.T) {
	doctors := []model.User{
		{ID: uuid.New(), Name: "Dr. Emily Davis", Role: model.RoleDoctor, Specialty: "Pediatrics"},
		{ID: uuid.New(), Name: "Dr. Sarah Johnson", Role: model.RoleDoctor, Specialty: "Cardiology"},
	}

	t.Run("unfiltered listing", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("ListDoctors", mock.Anything, "", "").Return(doctors, nil)

		svc := NewDoctorService(mockRepo, nil)
		got, err := svc.ListDoctors(context.Background(), "", "")

		assert.NoError(t, err)
		assert.Len(t, got, 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("specialty filter passes through", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("ListDoctors", mock.Anything, "cardiology", "").Return(doctors[1:], nil)

		svc := NewDoctorService(mockRepo, nil)
		got, err := svc.ListDoctors(context.Background(), "cardiology", "")

		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, "Dr. Sarah Johnson", got[0].Name)
		mockRepo.AssertExpectations(t)
	})
}

func TestDoctorService_GetDoctor(t *testing.T) {
	doctorID := uuid.New()

	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindDoctorByID", mock.Anything, doctorID).Return(&model.User{ID: doctorID, Role: model.RoleDoctor}, nil)

		svc := NewDoctorService(mockRepo, nil)
		doctor, err := svc.GetDoctor(context.Background(), doctorID)

		assert.NoError(t, err)
		assert.Equal(t, doctorID, doctor.ID)
	})

	t.Run("patient id is not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindDoctorByID", mock.Anything, doctorID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewDoctorService(mockRepo, nil)
		doctor, err := svc.GetDoctor(context.Background(), doctorID)

		assert.Equal(t, errors.ErrDoctorNotFound, err)
		assert.Nil(t, doctor)
	})
}
