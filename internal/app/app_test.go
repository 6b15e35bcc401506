package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localkonnect/mobile-core/internal/core/domain"
)

// fakeBackend mounts the auth and service endpoints the core consumes.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	e := echo.New()
	e.POST("/auth/login", func(c echo.Context) error {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
		if req.Password != "secret1" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusOK, map[string]any{
			"token": "T",
			"user":  map[string]string{"userType": "User"},
		})
	})
	e.GET("/services", func(c echo.Context) error {
		if c.Request().Header.Get("Authorization") != "Bearer T" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		}
		return c.JSON(http.StatusOK, []map[string]any{
			{"id": "1", "name": "Plumbing", "description": "d", "visitCharge": 25},
		})
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func TestApp_LoginThenListServices(t *testing.T) {
	srv := fakeBackend(t)
	t.Setenv("BACKEND_BASE_URL", srv.URL)
	t.Setenv("CREDENTIAL_STORE_PATH", filepath.Join(t.TempDir(), "credentials.json"))

	ctx := context.Background()
	a, err := New(ctx)
	require.NoError(t, err)

	// Before login, authenticated resources fail fast without a request.
	var services []domain.Service
	err = a.Resources.List(ctx, "/services", &services)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	route, err := a.Session.Login(ctx, "a@b.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, domain.RouteUser, route)

	require.NoError(t, a.Resources.List(ctx, "/services", &services))
	require.Len(t, services, 1)
	assert.Equal(t, "Plumbing", services[0].Name)

	require.NoError(t, a.Session.Logout(ctx))
	_, ok, err := a.Store.Get(ctx, domain.KeyAccessToken)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestApp_WrongPasswordSurfacesServerMessage(t *testing.T) {
	srv := fakeBackend(t)
	t.Setenv("BACKEND_BASE_URL", srv.URL)
	t.Setenv("CREDENTIAL_STORE_PATH", filepath.Join(t.TempDir(), "credentials.json"))

	ctx := context.Background()
	a, err := New(ctx)
	require.NoError(t, err)

	_, err = a.Session.Login(ctx, "a@b.com", "wrongpw")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid credentials", apiErr.Message)
}
