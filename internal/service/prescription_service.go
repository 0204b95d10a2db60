package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clinix/internal/errors"
	"clinix/internal/model"
	"clinix/internal/repository"
)

// MedicineInput is one line item of a prescription request.
type MedicineInput struct {
	Name     string
	Dosage   string
	Duration string
}

// CreatePrescriptionInput carries a prescription creation request.
type CreatePrescriptionInput struct {
	AppointmentID uuid.UUID
	Symptoms      string
	Diagnosis     string
	Medicines     []MedicineInput
	Notes         string
}

// PrescriptionUpdate is a presence-based patch. Notes accepts an
// explicit empty string to clear the field.
type PrescriptionUpdate struct {
	Symptoms  *string
	Diagnosis *string
	Medicines *[]MedicineInput
	Notes     *string
}

// PrescriptionService handles clinical records tied to appointments.
type PrescriptionService interface {
	Create(ctx context.Context, doctor *model.User, in CreatePrescriptionInput) (*model.Prescription, error)
	List(ctx context.Context, caller *model.User, patientID *uuid.UUID) ([]model.Prescription, error)
	Get(ctx context.Context, caller *model.User, id uuid.UUID) (*model.Prescription, error)
	Update(ctx context.Context, doctor *model.User, id uuid.UUID, in PrescriptionUpdate) (*model.Prescription, error)
}

type prescriptionService struct {
	prescriptions repository.PrescriptionRepository
	appointments  repository.AppointmentRepository
}

// NewPrescriptionService creates a new prescription service.
func NewPrescriptionService(prescriptions repository.PrescriptionRepository, appointments repository.AppointmentRepository) PrescriptionService {
	return &prescriptionService{
		prescriptions: prescriptions,
		appointments:  appointments,
	}
}

// Create writes the single prescription an appointment may carry.
// Preconditions run in a fixed order before anything is written:
// appointment exists, caller is its doctor, status is completed, and
// no prescription exists yet.
func (s *prescriptionService) Create(ctx context.Context, doctor *model.User, in CreatePrescriptionInput) (*model.Prescription, error) {
	appointment, err := s.appointments.FindByID(ctx, in.AppointmentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAppointmentNotFound
		}
		return nil, err
	}
	if appointment.DoctorID != doctor.ID {
		return nil, errors.ErrNotAppointmentDoctor
	}
	if appointment.Status != model.StatusCompleted {
		return nil, errors.ErrAppointmentNotCompleted
	}
	if _, err := s.prescriptions.FindByAppointmentID(ctx, in.AppointmentID); err == nil {
		return nil, errors.ErrPrescriptionExists
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check prescription: %w", err)
	}
	if len(in.Medicines) == 0 {
		return nil, errors.ErrMedicinesRequired
	}

	prescription := &model.Prescription{
		AppointmentID: appointment.ID,
		DoctorID:      appointment.DoctorID,
		PatientID:     appointment.PatientID,
		Symptoms:      in.Symptoms,
		Diagnosis:     in.Diagnosis,
		Notes:         in.Notes,
		Medicines:     toMedicines(in.Medicines),
	}
	if err := s.prescriptions.Create(ctx, prescription); err != nil {
		return nil, fmt.Errorf("create prescription: %w", err)
	}
	return s.prescriptions.FindByID(ctx, prescription.ID)
}

// List scopes by role: patients see prescriptions written for them,
// doctors see those they authored, optionally narrowed to one patient.
func (s *prescriptionService) List(ctx context.Context, caller *model.User, patientID *uuid.UUID) ([]model.Prescription, error) {
	if caller.IsDoctor() {
		return s.prescriptions.ListByDoctor(ctx, caller.ID, patientID)
	}
	return s.prescriptions.ListByPatient(ctx, caller.ID)
}

// Get returns one prescription, visible to the authoring doctor or the
// subject patient only.
func (s *prescriptionService) Get(ctx context.Context, caller *model.User, id uuid.UUID) (*model.Prescription, error) {
	prescription, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if prescription.DoctorID != caller.ID && prescription.PatientID != caller.ID {
		return nil, errors.ErrNotPrescriptionParty
	}
	return prescription, nil
}

// Update applies a presence-based partial update for the authoring
// doctor. Medicines, when present, replace the list wholesale and must
// stay non-empty.
func (s *prescriptionService) Update(ctx context.Context, doctor *model.User, id uuid.UUID, in PrescriptionUpdate) (*model.Prescription, error) {
	prescription, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if prescription.DoctorID != doctor.ID {
		return nil, errors.ErrNotPrescriber
	}

	if in.Symptoms != nil {
		prescription.Symptoms = *in.Symptoms
	}
	if in.Diagnosis != nil {
		prescription.Diagnosis = *in.Diagnosis
	}
	if in.Notes != nil {
		prescription.Notes = *in.Notes
	}
	if in.Medicines != nil {
		if len(*in.Medicines) == 0 {
			return nil, errors.ErrMedicinesRequired
		}
		prescription.Medicines = toMedicines(*in.Medicines)
	}

	if err := s.prescriptions.Update(ctx, prescription); err != nil {
		return nil, fmt.Errorf("update prescription: %w", err)
	}
	return s.prescriptions.FindByID(ctx, prescription.ID)
}

func (s *prescriptionService) find(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	prescription, err := s.prescriptions.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPrescriptionNotFound
		}
		return nil, err
	}
	return prescription, nil
}

func toMedicines(in []MedicineInput) []model.Medicine {
	medicines := make([]model.Medicine, 0, len(in))
	for _, m := range in {
		medicines = append(medicines, model.Medicine{
			Name:     m.Name,
			Dosage:   m.Dosage,
			Duration: m.Duration,
		})
	}
	return medicines
}
