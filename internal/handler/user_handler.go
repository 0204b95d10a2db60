package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"clinix/internal/auth"
	"clinix/internal/service"
)

// UserHandler handles the caller's own profile.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfileRequest is a partial profile update; absent fields are
// left untouched.
type UpdateProfileRequest struct {
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	Specialty     *string `json:"specialty"`
	Experience    *int    `json:"experience" validate:"omitempty,min=0"`
	Bio           *string `json:"bio"`
	Location      *string `json:"location"`
	Education     *string `json:"education"`
	LicenseNumber *string `json:"licenseNumber"`
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	caller, _ := auth.UserFromContext(c)

	user, err := h.userService.GetProfile(c.Request().Context(), caller.ID)
	if err != nil {
		return httpError(err)
	}
	return respond(c, http.StatusOK, "", user)
}

// UpdateProfile godoc
// @Summary Update the caller's profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Fields to change"
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Router /users/profile [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	caller, _ := auth.UserFromContext(c)

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_BODY")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_FAILED")
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), caller.ID, service.ProfileUpdate{
		Name:          req.Name,
		Phone:         req.Phone,
		Specialty:     req.Specialty,
		Experience:    req.Experience,
		Bio:           req.Bio,
		Location:      req.Location,
		Education:     req.Education,
		LicenseNumber: req.LicenseNumber,
	})
	if err != nil {
		return httpError(err)
	}
	return respond(c, http.StatusOK, "Profile updated successfully", user)
}

// UploadPhoto godoc
// @Summary Upload a profile photo
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "Image file"
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Router /users/profile/photo [post]
func (h *UserHandler) UploadPhoto(c echo.Context) error {
	caller, _ := auth.UserFromContext(c)

	file, err := c.FormFile("photo")
	if err != nil {
		return badRequest("Please upload a file", "FILE_REQUIRED")
	}
	if ct := file.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return badRequest("Only image files are allowed", "INVALID_FILE_TYPE")
	}

	src, err := file.Open()
	if err != nil {
		return httpError(err)
	}
	defer src.Close()

	user, err := h.userService.UploadPhoto(c.Request().Context(), caller.ID, file.Filename, src)
	if err != nil {
		return httpError(err)
	}
	return respond(c, http.StatusOK, "Photo uploaded successfully", user)
}

// DeletePhoto godoc
// @Summary Remove the caller's profile photo
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/profile/photo [delete]
func (h *UserHandler) DeletePhoto(c echo.Context) error {
	caller, _ := auth.UserFromContext(c)

	user, err := h.userService.DeletePhoto(c.Request().Context(), caller.ID)
	if err != nil {
		return httpError(err)
	}
	return respond(c, http.StatusOK, "Photo removed successfully", user)
}
