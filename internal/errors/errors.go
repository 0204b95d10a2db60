package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user record does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrDoctorNotFound is returned when an id does not resolve to a doctor.
	ErrDoctorNotFound = errors.New("doctor not found")
	// ErrAppointmentNotFound is returned when an appointment does not exist.
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrPrescriptionNotFound is returned when a prescription does not exist.
	ErrPrescriptionNotFound = errors.New("prescription not found")
	// ErrEmailTaken is returned when registering with an email already in use.
	ErrEmailTaken = errors.New("an account with this email already exists")
	// ErrSpecialtyRequired is returned when a doctor registers without a specialty.
	ErrSpecialtyRequired = errors.New("specialty is required for doctors")
	// ErrNameRequired is returned when a profile update would blank the name.
	ErrNameRequired = errors.New("name cannot be empty")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidInvite is returned when an invite token is unknown or expired.
	ErrInvalidInvite = errors.New("invalid or expired invite token")
	// ErrNotParticipant is returned when the caller is neither party of an appointment.
	ErrNotParticipant = errors.New("not authorized to access this appointment")
	// ErrNotAppointmentDoctor is returned when someone other than the assigned doctor acts on an appointment.
	ErrNotAppointmentDoctor = errors.New("only the assigned doctor may perform this action")
	// ErrNotPrescriber is returned when someone other than the prescribing doctor edits a prescription.
	ErrNotPrescriber = errors.New("only the prescribing doctor may perform this action")
	// ErrNotPrescriptionParty is returned when the caller may not view a prescription.
	ErrNotPrescriptionParty = errors.New("not authorized to view this prescription")
	// ErrAppointmentNotCompleted is returned when prescribing against a non-completed appointment.
	ErrAppointmentNotCompleted = errors.New("can only create prescription for completed appointments")
	// ErrPrescriptionExists is returned when an appointment already has a prescription.
	ErrPrescriptionExists = errors.New("prescription already exists for this appointment")
	// ErrAppointmentHasPrescription blocks deleting an appointment that a prescription references.
	ErrAppointmentHasPrescription = errors.New("appointment has a prescription attached")
	// ErrInvalidStatus is returned for a status outside the appointment enum.
	ErrInvalidStatus = errors.New("invalid appointment status")
	// ErrMedicinesRequired is returned when a prescription carries no medicines.
	ErrMedicinesRequired = errors.New("at least one medicine is required")
)

// ErrorResponse is the error envelope every failing endpoint returns.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Success: false,
		Message: e.Message,
		Error:   e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Conflict and
// invalid-state conditions map to 400.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrDoctorNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "DOCTOR_NOT_FOUND")
	case ErrAppointmentNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "APPOINTMENT_NOT_FOUND")
	case ErrPrescriptionNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "PRESCRIPTION_NOT_FOUND")
	case ErrEmailTaken:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN")
	case ErrSpecialtyRequired:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SPECIALTY_REQUIRED")
	case ErrNameRequired:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NAME_REQUIRED")
	case ErrInvalidCredentials:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case ErrInvalidInvite:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_INVITE")
	case ErrNotParticipant:
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_PARTICIPANT")
	case ErrNotAppointmentDoctor:
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_APPOINTMENT_DOCTOR")
	case ErrNotPrescriber:
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_PRESCRIBER")
	case ErrNotPrescriptionParty:
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_PRESCRIPTION_PARTY")
	case ErrAppointmentNotCompleted:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "APPOINTMENT_NOT_COMPLETED")
	case ErrPrescriptionExists:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PRESCRIPTION_EXISTS")
	case ErrAppointmentHasPrescription:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "APPOINTMENT_HAS_PRESCRIPTION")
	case ErrInvalidStatus:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case ErrMedicinesRequired:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MEDICINES_REQUIRED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
