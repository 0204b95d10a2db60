package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"clinix/internal/errors"
	"clinix/internal/model"
	"clinix/internal/repository"
)

const userContextKey = "currentUser"

func unauthenticated(message string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Success: false,
		Message: message,
		Error:   "UNAUTHENTICATED",
	})
}

// CurrentUser resolves the verified JWT into a full user record and
// attaches it to the request context. The credential is stateless, so
// the lookup happens on every request; a token whose user no longer
// exists is treated as unauthenticated.
func CurrentUser(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return unauthenticated("invalid token")
			}
			claims, ok := token.Claims.(*Claims)
			if !ok {
				return unauthenticated("invalid token")
			}
			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return unauthenticated("invalid token")
			}
			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return unauthenticated("user no longer exists")
			}
			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireRole rejects callers whose role is not in the allow-list.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := UserFromContext(c)
			if !ok {
				return unauthenticated("not authenticated")
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Success: false,
				Message: "insufficient permissions",
				Error:   "FORBIDDEN",
			})
		}
	}
}

// UserFromContext returns the user resolved by CurrentUser.
func UserFromContext(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(userContextKey).(*model.User)
	return user, ok
}

// SetContextUser stores a user on the context directly. Test helper for
// exercising handlers without the middleware chain.
func SetContextUser(c echo.Context, user *model.User) {
	c.Set(userContextKey, user)
}
