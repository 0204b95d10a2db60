package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"clinix/internal/service"
)

// DoctorHandler serves the public doctor directory.
type DoctorHandler struct {
	doctorService service.DoctorService
}

// NewDoctorHandler creates a new doctor handler.
func NewDoctorHandler(doctorService service.DoctorService) *DoctorHandler {
	return &DoctorHandler{doctorService: doctorService}
}

// List godoc
// @Summary List doctors
// @Tags doctors
// @Produce json
// @Param specialty query string false "Filter by specialty (case-insensitive)"
// @Param search query string false "Substring match on name or specialty"
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 401 {object} errors.ErrorResponse
// @Router /doctors [get]
func (h *DoctorHandler) List(c echo.Context) error {
	doctors, err := h.doctorService.ListDoctors(c.Request().Context(),
		c.QueryParam("specialty"), c.QueryParam("search"))
	if err != nil {
		return httpError(err)
	}
	return respondList(c, len(doctors), doctors)
}

// Get godoc
// @Summary Get a doctor by id
// @Tags doctors
// @Produce json
// @Param id path string true "Doctor ID"
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 404 {object} errors.ErrorResponse
// @Router /doctors/{id} [get]
func (h *DoctorHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid doctor id", "INVALID_ID")
	}

	doctor, err := h.doctorService.GetDoctor(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return respond(c, http.StatusOK, "", doctor)
}
