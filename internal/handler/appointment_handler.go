package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"clinix/internal/auth"
	"clinix/internal/service"
)

// AppointmentHandler handles appointment booking and lifecycle endpoints.
type AppointmentHandler struct {
	appointmentService service.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler.
func NewAppointmentHandler(appointmentService service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// CreateAppointmentRequest represents a patient-initiated booking.
type CreateAppointmentRequest struct {
	DoctorID string `json:"doctorId" validate:"required,uuid"`
	Date     string `json:"date" validate:"required"`
	Time     string `json:"time" validate:"required"`
	Reason   string `json:"reason" validate:"required"`
}

// CreateForPatientRequest represents a doctor-initiated booking. The
// patient is looked up by email and provisioned when absent.
type CreateForPatientRequest struct {
	PatientName  string `json:"patientName" validate:"required"`
	PatientEmail string `json:"patientEmail" validate:"required,email"`
	PatientPhone string `json:"patientPhone"`
	Date         string `json:"date" validate:"required"`
	Time         string `json:"time" validate:"required"`
	Reason       string `json:"reason" validate:"required"`
}

// UpdateStatusRequest carries an appointment status transition.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// parseDate accepts RFC 3339 timestamps and plain calendar dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// Create godoc
// @Summary Book an appointment with a doctor
// @Tags appointments
// @Accept json
// @Produce json
// @Param request body CreateAppointmentRequest true "Booking data"
// @Security BearerAuth
// @Success 201 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /appointments [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	patient, _ := auth.UserFromContext(c)

	var req CreateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_BODY")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_FAILED")
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return badRequest("invalid doctor id", "INVALID_ID")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return badRequest("invalid date format", "INVALID_DATE")
	}

	appointment, err := h.appointmentService.Book(c.Request().Context(), patient, service.BookInput{
		DoctorID: doctorID,
		Date:     date,
		Time:     req.Time,
		Reason:   req.Reason,
	})
	if err != nil {
		return httpError(err)
	}
	return respond(c, http.StatusCreated, "Appointment booked successfully", appointment)
}

// CreateForPatient godoc
// @Summary Book an appointment on a patient's behalf
// @Tags appointments
// @Accept json
// @Produce json
// @Param request body CreateForPatientRequest true "Booking data"
// @Security BearerAuth
// @Success 201 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /appointments/create-for-patient [post]
func (h *AppointmentHandler) CreateForPatient(c echo.Context) error {
	doctor, _ := auth.UserFromContext(c)

	var req CreateForPatientRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_BODY")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_FAILED")
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return badRequest("invalid date format", "INVALID_DATE")
	}

	result, err := h.appointmentService.BookForPatient(c.Request().Context(), doctor, service.BookForPatientInput{
		Patient: service.PatientDescriptor{
			Name:  req.PatientName,
			Email: req.PatientEmail,
			Phone: req.PatientPhone,
		},
		Date:   date,
		Time:   req.Time,
		Reason: req.Reason,
	})
	if err != nil {
		return httpError(err)
	}

	data := echo.Map{
		"appointment":    result.Appointment,
		"patientCreated": result.PatientCreated,
	}
	if result.InviteToken != "" {
		data["inviteToken"] = result.InviteToken
	}
	return respond(c, http.StatusCreated, "Appointment booked successfully", data)
}

// List godoc
// @Summary List the caller's appointments
// @Tags appointments
// @Produce json
// @Param status query string false "Filter by status"
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 401 {object} errors.ErrorResponse
// @Router /appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	caller, _ := auth.UserFromContext(c)

	appointments, err := h.appointmentService.List(c.Request().Context(), caller, c.QueryParam("status"))
	if err != nil {
		return httpError(err)
	}
	return respondList(c, len(appointments), appointments)
}

// Get godoc
// @Summary Get one of the caller's appointments
// @Tags appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(c echo.Context) error {
	caller, _ := auth.UserFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid appointment id", "INVALID_ID")
	}

	appointment, err := h.appointmentService.Get(c.Request().Context(), caller, id)
	if err != nil {
		return httpError(err)
	}
	return respond(c, http.StatusOK, "", appointment)
}

// UpdateStatus godoc
// @Summary Update an appointment's status
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body UpdateStatusRequest true "New status"
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	caller, _ := auth.UserFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid appointment id", "INVALID_ID")
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_BODY")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_FAILED")
	}

	appointment, err := h.appointmentService.UpdateStatus(c.Request().Context(), caller, id, req.Status)
	if err != nil {
		return httpError(err)
	}
	return respond(c, http.StatusOK, "Appointment status updated", appointment)
}

// Delete godoc
// @Summary Cancel and remove an appointment
// @Tags appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c echo.Context) error {
	caller, _ := auth.UserFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid appointment id", "INVALID_ID")
	}

	if err := h.appointmentService.Delete(c.Request().Context(), caller, id); err != nil {
		return httpError(err)
	}
	return respond(c, http.StatusOK, "Appointment cancelled successfully", nil)
}
