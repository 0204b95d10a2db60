package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"clinix/internal/model"
)

// stubUserRepository serves a fixed set of users by id.
type stubUserRepository struct {
	users map[uuid.UUID]*model.User
}

func (s *stubUserRepository) Create(ctx context.Context, user *model.User) error { return nil }
func (s *stubUserRepository) Update(ctx context.Context, user *model.User) error { return nil }

func (s *stubUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepository) FindDoctorByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepository) ListDoctors(ctx context.Context, specialty, search string) ([]model.User, error) {
	return nil, nil
}

func newTestContext(t *testing.T) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestCurrentUser(t *testing.T) {
	user := &model.User{ID: uuid.New(), Name: "Dr. Sarah Johnson", Role: model.RoleDoctor}
	repo := &stubUserRepository{users: map[uuid.UUID]*model.User{user.ID: user}}

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("resolves the token into a user", func(t *testing.T) {
		c := newTestContext(t)
		c.Set("user", &jwt.Token{Claims: &Claims{UserID: user.ID.String(), Role: user.Role}})

		err := CurrentUser(repo)(next)(c)

		assert.NoError(t, err)
		got, ok := UserFromContext(c)
		assert.True(t, ok)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("deleted user is unauthenticated", func(t *testing.T) {
		c := newTestContext(t)
		c.Set("user", &jwt.Token{Claims: &Claims{UserID: uuid.NewString(), Role: model.RolePatient}})

		err := CurrentUser(repo)(next)(c)

		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("missing token is unauthenticated", func(t *testing.T) {
		c := newTestContext(t)

		err := CurrentUser(repo)(next)(c)

		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}

func TestRequireRole(t *testing.T) {
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("matching role passes", func(t *testing.T) {
		c := newTestContext(t)
		SetContextUser(c, &model.User{ID: uuid.New(), Role: model.RoleDoctor})

		err := RequireRole(model.RoleDoctor)(next)(c)

		assert.NoError(t, err)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		c := newTestContext(t)
		SetContextUser(c, &model.User{ID: uuid.New(), Role: model.RolePatient})

		err := RequireRole(model.RoleDoctor)(next)(c)

		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("no resolved user is unauthenticated", func(t *testing.T) {
		c := newTestContext(t)

		err := RequireRole(model.RoleDoctor)(next)(c)

		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}
