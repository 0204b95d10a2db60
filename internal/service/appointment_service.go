package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"clinix/internal/auth"
	"clinix/internal/errors"
	"clinix/internal/model"
	"clinix/internal/repository"
)

// BookInput carries a patient-initiated booking.
type BookInput struct {
	DoctorID uuid.UUID
	Date     time.Time
	Time     string
	Reason   string
}

// PatientDescriptor identifies the patient a doctor books for.
type PatientDescriptor struct {
	Name  string
	Email string
	Phone string
}

// BookForPatientInput carries a doctor-initiated booking.
type BookForPatientInput struct {
	Patient PatientDescriptor
	Date    time.Time
	Time    string
	Reason  string
}

// BookForPatientResult reports the appointment plus whether a patient
// account was provisioned; InviteToken is set only in that case so the
// clinic can hand it to the patient.
type BookForPatientResult struct {
	Appointment    *model.Appointment
	PatientCreated bool
	InviteToken    string
}

// AppointmentService handles the appointment lifecycle.
type AppointmentService interface {
	Book(ctx context.Context, patient *model.User, in BookInput) (*model.Appointment, error)
	BookForPatient(ctx context.Context, doctor *model.User, in BookForPatientInput) (*BookForPatientResult, error)
	List(ctx context.Context, caller *model.User, status string) ([]model.Appointment, error)
	Get(ctx context.Context, caller *model.User, id uuid.UUID) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, caller *model.User, id uuid.UUID, status string) (*model.Appointment, error)
	Delete(ctx context.Context, caller *model.User, id uuid.UUID) error
}

type appointmentService struct {
	appointments  repository.AppointmentRepository
	prescriptions repository.PrescriptionRepository
	users         repository.UserRepository
	invites       auth.InviteStore
}

// NewAppointmentService creates a new appointment service.
func NewAppointmentService(
	appointments repository.AppointmentRepository,
	prescriptions repository.PrescriptionRepository,
	users repository.UserRepository,
	invites auth.InviteStore,
) AppointmentService {
	return &appointmentService{
		appointments:  appointments,
		prescriptions: prescriptions,
		users:         users,
		invites:       invites,
	}
}

// Book creates a pending appointment for the authenticated patient
// after verifying the target doctor exists with the doctor role.
func (s *appointmentService) Book(ctx context.Context, patient *model.User, in BookInput) (*model.Appointment, error) {
	if _, err := s.users.FindDoctorByID(ctx, in.DoctorID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrDoctorNotFound
		}
		return nil, err
	}

	appointment := &model.Appointment{
		PatientID: patient.ID,
		DoctorID:  in.DoctorID,
		Date:      in.Date,
		Time:      in.Time,
		Reason:    in.Reason,
		Status:    model.StatusPending,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return s.appointments.FindByID(ctx, appointment.ID)
}

// BookForPatient creates a confirmed appointment on the doctor's own
// calendar. An unknown patient email provisions an account with a
// random password and a one-time invite token.
func (s *appointmentService) BookForPatient(ctx context.Context, doctor *model.User, in BookForPatientInput) (*BookForPatientResult, error) {
	result := &BookForPatientResult{}

	patient, err := s.users.FindByEmail(ctx, in.Patient.Email)
	if err == gorm.ErrRecordNotFound {
		patient, err = s.provisionPatient(ctx, in.Patient)
		if err != nil {
			return nil, err
		}
		result.PatientCreated = true
		if token, err := s.invites.CreateInvite(ctx, patient.ID); err == nil {
			result.InviteToken = token
		}
	} else if err != nil {
		return nil, fmt.Errorf("find patient: %w", err)
	}

	appointment := &model.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      in.Date,
		Time:      in.Time,
		Reason:    in.Reason,
		Status:    model.StatusConfirmed,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	result.Appointment, err = s.appointments.FindByID(ctx, appointment.ID)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *appointmentService) provisionPatient(ctx context.Context, desc PatientDescriptor) (*model.User, error) {
	// The password is random and thrown away; the invite flow is the
	// only way into the account.
	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	patient := &model.User{
		Name:         desc.Name,
		Email:        desc.Email,
		Phone:        desc.Phone,
		Role:         model.RolePatient,
		PasswordHash: string(hashed),
	}
	if err := s.users.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return patient, nil
}

// List returns the caller's appointments, scoped by role and optionally
// filtered by status.
func (s *appointmentService) List(ctx context.Context, caller *model.User, status string) ([]model.Appointment, error) {
	if caller.IsDoctor() {
		return s.appointments.ListByDoctor(ctx, caller.ID, status)
	}
	return s.appointments.ListByPatient(ctx, caller.ID, status)
}

// Get returns one appointment, visible to its two participants only.
func (s *appointmentService) Get(ctx context.Context, caller *model.User, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appointment.IsParticipant(caller.ID) {
		return nil, errors.ErrNotParticipant
	}
	return appointment, nil
}

// UpdateStatus sets any of the four statuses, but only for the
// assigned doctor. Transitions are unrestricted so a doctor can fix a
// mis-set status.
func (s *appointmentService) UpdateStatus(ctx context.Context, caller *model.User, id uuid.UUID, status string) (*model.Appointment, error) {
	if !model.ValidStatus(status) {
		return nil, errors.ErrInvalidStatus
	}
	appointment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.DoctorID != caller.ID {
		return nil, errors.ErrNotAppointmentDoctor
	}
	appointment.Status = status
	if err := s.appointments.Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	return appointment, nil
}

// Delete removes an appointment for either participant, unless a
// prescription references it (restrict policy: the clinical record
// wins over the booking).
func (s *appointmentService) Delete(ctx context.Context, caller *model.User, id uuid.UUID) error {
	appointment, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !appointment.IsParticipant(caller.ID) {
		return errors.ErrNotParticipant
	}

	if _, err := s.prescriptions.FindByAppointmentID(ctx, id); err == nil {
		return errors.ErrAppointmentHasPrescription
	} else if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check prescription: %w", err)
	}

	if err := s.appointments.Delete(ctx, appointment); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	return nil
}

func (s *appointmentService) find(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAppointmentNotFound
		}
		return nil, err
	}
	return appointment, nil
}
