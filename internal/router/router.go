package router

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"

	"clinix/internal/auth"
	"clinix/internal/config"
	"clinix/internal/errors"
	"clinix/internal/handler"
	"clinix/internal/model"
	"clinix/internal/repository"
	"clinix/internal/storage"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	users repository.UserRepository,
	store storage.Store,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	doctorHandler *handler.DoctorHandler,
	appointmentHandler *handler.AppointmentHandler,
	prescriptionHandler *handler.PrescriptionHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.HTTPErrorHandler = errorHandler

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "Welcome to Clinix API",
			"version": "1.0.0",
			"endpoints": echo.Map{
				"health":        "/health",
				"auth":          "/api/auth",
				"doctors":       "/api/doctors",
				"appointments":  "/api/appointments",
				"prescriptions": "/api/prescriptions",
				"users":         "/api/users",
			},
		})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"success":   true,
			"message":   "Clinix API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Serve uploaded profile photos when backed by local disk.
	if local, ok := store.(*storage.LocalStore); ok {
		e.Static("/uploads", local.Dir())
	}

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/accept-invite", authHandler.AcceptInvite)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Success: false,
				Message: "missing or invalid token",
				Error:   "UNAUTHENTICATED",
			})
		},
	}), auth.CurrentUser(users))

	secured.GET("/auth/me", authHandler.Me)

	// Profile routes
	secured.GET("/users/profile", userHandler.GetProfile)
	secured.PATCH("/users/profile", userHandler.UpdateProfile)
	secured.POST("/users/profile/photo", userHandler.UploadPhoto)
	secured.DELETE("/users/profile/photo", userHandler.DeletePhoto)

	// Doctor directory
	secured.GET("/doctors", doctorHandler.List)
	secured.GET("/doctors/:id", doctorHandler.Get)

	// Appointment routes
	secured.POST("/appointments", appointmentHandler.Create, auth.RequireRole(model.RolePatient))
	secured.POST("/appointments/create-for-patient", appointmentHandler.CreateForPatient, auth.RequireRole(model.RoleDoctor))
	secured.GET("/appointments", appointmentHandler.List)
	secured.GET("/appointments/:id", appointmentHandler.Get)
	secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus, auth.RequireRole(model.RoleDoctor))
	secured.DELETE("/appointments/:id", appointmentHandler.Delete)

	// Prescription routes
	secured.POST("/prescriptions", prescriptionHandler.Create, auth.RequireRole(model.RoleDoctor))
	secured.GET("/prescriptions", prescriptionHandler.List)
	secured.GET("/prescriptions/:id", prescriptionHandler.Get)
	secured.PATCH("/prescriptions/:id", prescriptionHandler.Update, auth.RequireRole(model.RoleDoctor))
}

// errorHandler renders every error as the shared envelope. Unknown
// errors are logged and reported as a generic 500.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	body := errors.ErrorResponse{
		Success: false,
		Message: "internal server error",
		Error:   "INTERNAL_ERROR",
	}

	if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		switch m := he.Message.(type) {
		case errors.ErrorResponse:
			body = m
		case string:
			body.Message = m
			body.Error = http.StatusText(status)
			if status == http.StatusNotFound {
				body.Message = "Route not found"
				body.Error = "NOT_FOUND"
			}
		}
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Str("path", c.Request().URL.Path).
			Msg("request failed")
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, body)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
