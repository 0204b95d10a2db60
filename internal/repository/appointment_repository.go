package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clinix/internal/model"
)

// AppointmentRepository defines appointment persistence operations.
// Reads preload both parties so responses can embed them.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	Update(ctx context.Context, appointment *model.Appointment) error
	Delete(ctx context.Context, appointment *model.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, status string) ([]model.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, status string) ([]model.Appointment, error)
}

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository builds a GORM-backed repository.
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	return r.db.WithContext(ctx).Save(appointment).Error
}

func (r *appointmentRepository) Delete(ctx context.Context, appointment *model.Appointment) error {
	return r.db.WithContext(ctx).Delete(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var appointment model.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").Preload("Doctor").
		Where("id = ?", id).
		First(&appointment).Error; err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID uuid.UUID, status string) ([]model.Appointment, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("patient_id = ?", patientID), status)
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID, status string) ([]model.Appointment, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("doctor_id = ?", doctorID), status)
}

// list applies the optional status filter and the contract sort order:
// newest date first, then time label descending within a date.
func (r *appointmentRepository) list(ctx context.Context, q *gorm.DB, status string) ([]model.Appointment, error) {
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var appointments []model.Appointment
	if err := q.Preload("Patient").Preload("Doctor").
		Order("date DESC, time DESC").
		Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}
