package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"clinix/internal/auth"
	"clinix/internal/service"
)

// PrescriptionHandler handles prescription endpoints.
type PrescriptionHandler struct {
	prescriptionService service.PrescriptionService
}

// NewPrescriptionHandler creates a new prescription handler.
func NewPrescriptionHandler(prescriptionService service.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{prescriptionService: prescriptionService}
}

// MedicineRequest is one prescribed medicine.
type MedicineRequest struct {
	Name     string `json:"name" validate:"required"`
	Dosage   string `json:"dosage" validate:"required"`
	Duration string `json:"duration" validate:"required"`
}

// CreatePrescriptionRequest represents a prescription creation request.
type CreatePrescriptionRequest struct {
	AppointmentID string            `json:"appointmentId" validate:"required,uuid"`
	Symptoms      string            `json:"symptoms" validate:"required"`
	Diagnosis     string            `json:"diagnosis" validate:"required"`
	Medicines     []MedicineRequest `json:"medicines" validate:"required,min=1,dive"`
	Notes         string            `json:"notes"`
}

// UpdatePrescriptionRequest is a partial update; absent fields are
// left untouched and medicines, when present, replace the full list.
type UpdatePrescriptionRequest struct {
	Symptoms  *string            `json:"symptoms"`
	Diagnosis *string            `json:"diagnosis"`
	Medicines *[]MedicineRequest `json:"medicines" validate:"omitempty,min=1,dive"`
	Notes     *string            `json:"notes"`
}

func toMedicineInputs(in []MedicineRequest) []service.MedicineInput {
	out := make([]service.MedicineInput, 0, len(in))
	for _, m := range in {
		out = append(out, service.MedicineInput{Name: m.Name, Dosage: m.Dosage, Duration: m.Duration})
	}
	return out
}

// Create godoc
// @Summary Issue a prescription for a completed appointment
// @Tags prescriptions
// @Accept json
// @Produce json
// @Param request body CreatePrescriptionRequest true "Prescription data"
// @Security BearerAuth
// @Success 201 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /prescriptions [post]
func (h *PrescriptionHandler) Create(c echo.Context) error {
	doctor, _ := auth.UserFromContext(c)

	var req CreatePrescriptionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_BODY")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_FAILED")
	}

	appointmentID, err := uuid.Parse(req.AppointmentID)
	if err != nil {
		return badRequest("invalid appointment id", "INVALID_ID")
	}

	prescription, err := h.prescriptionService.Create(c.Request().Context(), doctor, service.CreatePrescriptionInput{
		AppointmentID: appointmentID,
		Symptoms:      req.Symptoms,
		Diagnosis:     req.Diagnosis,
		Medicines:     toMedicineInputs(req.Medicines),
		Notes:         req.Notes,
	})
	if err != nil {
		return httpError(err)
	}
	return respond(c, http.StatusCreated, "Prescription created successfully", prescription)
}

// List godoc
// @Summary List prescriptions visible to the caller
// @Tags prescriptions
// @Produce json
// @Param patientId query string false "Doctors only: restrict to one patient"
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 401 {object} errors.ErrorResponse
// @Router /prescriptions [get]
func (h *PrescriptionHandler) List(c echo.Context) error {
	caller, _ := auth.UserFromContext(c)

	var patientID *uuid.UUID
	if raw := c.QueryParam("patientId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return badRequest("invalid patient id", "INVALID_ID")
		}
		patientID = &id
	}

	prescriptions, err := h.prescriptionService.List(c.Request().Context(), caller, patientID)
	if err != nil {
		return httpError(err)
	}
	return respondList(c, len(prescriptions), prescriptions)
}

// Get godoc
// @Summary Get a prescription
// @Tags prescriptions
// @Produce json
// @Param id path string true "Prescription ID"
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /prescriptions/{id} [get]
func (h *PrescriptionHandler) Get(c echo.Context) error {
	caller, _ := auth.UserFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid prescription id", "INVALID_ID")
	}

	prescription, err := h.prescriptionService.Get(c.Request().Context(), caller, id)
	if err != nil {
		return httpError(err)
	}
	return respond(c, http.StatusOK, "", prescription)
}

// Update godoc
// @Summary Update a prescription
// @Tags prescriptions
// @Accept json
// @Produce json
// @Param id path string true "Prescription ID"
// @Param request body UpdatePrescriptionRequest true "Fields to change"
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /prescriptions/{id} [patch]
func (h *PrescriptionHandler) Update(c echo.Context) error {
	doctor, _ := auth.UserFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid prescription id", "INVALID_ID")
	}

	var req UpdatePrescriptionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_BODY")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_FAILED")
	}

	update := service.PrescriptionUpdate{
		Symptoms:  req.Symptoms,
		Diagnosis: req.Diagnosis,
		Notes:     req.Notes,
	}
	if req.Medicines != nil {
		medicines := toMedicineInputs(*req.Medicines)
		update.Medicines = &medicines
	}

	prescription, err := h.prescriptionService.Update(c.Request().Context(), doctor, id, update)
	if err != nil {
		return httpError(err)
	}
	return respond(c, http.StatusOK, "Prescription updated successfully", prescription)
}
