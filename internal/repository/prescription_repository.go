package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clinix/internal/model"
)

// PrescriptionRepository defines prescription persistence operations.
type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *model.Prescription) error
	// Update saves the prescription and replaces its medicine rows.
	Update(ctx context.Context, prescription *model.Prescription) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Prescription, error)
	FindByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*model.Prescription, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]model.Prescription, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, patientID *uuid.UUID) ([]model.Prescription, error)
}

type prescriptionRepository struct {
	db *gorm.DB
}

// NewPrescriptionRepository builds a GORM-backed repository.
func NewPrescriptionRepository(db *gorm.DB) PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	return r.db.WithContext(ctx).Create(prescription).Error
}

// Update replaces the medicines wholesale inside one transaction so a
// partial write can never leave a prescription with a mixed list.
func (r *prescriptionRepository) Update(ctx context.Context, prescription *model.Prescription) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("prescription_id = ?", prescription.ID).
			Delete(&model.Medicine{}).Error; err != nil {
			return err
		}
		for i := range prescription.Medicines {
			prescription.Medicines[i].ID = 0
			prescription.Medicines[i].PrescriptionID = prescription.ID
		}
		return tx.Save(prescription).Error
	})
}

func (r *prescriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	var prescription model.Prescription
	if err := r.preloaded(ctx).Where("id = ?", id).First(&prescription).Error; err != nil {
		return nil, err
	}
	return &prescription, nil
}

func (r *prescriptionRepository) FindByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*model.Prescription, error) {
	var prescription model.Prescription
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&prescription).Error; err != nil {
		return nil, err
	}
	return &prescription, nil
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]model.Prescription, error) {
	var prescriptions []model.Prescription
	if err := r.preloaded(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&prescriptions).Error; err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID, patientID *uuid.UUID) ([]model.Prescription, error) {
	q := r.preloaded(ctx).Where("doctor_id = ?", doctorID)
	if patientID != nil {
		q = q.Where("patient_id = ?", *patientID)
	}
	var prescriptions []model.Prescription
	if err := q.Order("created_at DESC").Find(&prescriptions).Error; err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Medicines").
		Preload("Doctor").
		Preload("Patient").
		Preload("Appointment")
}
