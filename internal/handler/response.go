package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"clinix/internal/errors"
)

// Response is the success envelope every endpoint returns. List
// endpoints additionally carry the record count.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func respondList(c echo.Context, count int, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Success: true, Count: &count, Data: data})
}

// httpError translates a domain error into the error envelope. The
// original error rides along internally so the server log keeps the
// cause that the generic 500 message hides.
func httpError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}

func badRequest(message, code string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Success: false,
		Message: message,
		Error:   code,
	})
}
