package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/idanlevy/flickpick/internal/middleware"
	"github.com/idanlevy/flickpick/internal/utils"
)

const authTestSecret = "auth-test-secret"

func authTestServer() *echo.Echo {
	e := echo.New()
	g := e.Group("/v1")
	g.Use(middleware.BearerAuth(authTestSecret))
	g.GET("/whoami", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": middleware.UserID(c),
			"email":   middleware.Email(c),
		})
	})
	return e
}

func TestBearerAuthMissingHeader(t *testing.T) {
	e := authTestServer()

	req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "missing bearer token")
}

func TestBearerAuthWrongScheme(t *testing.T) {
	e := authTestServer()

	req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerAuthBadSignature(t *testing.T) {
	e := authTestServer()

	tok, err := utils.NewAccessToken("some-other-secret", 7, "eve@example.com", 5)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid token")
}

func TestBearerAuthExpiredToken(t *testing.T) {
	e := authTestServer()

	tok, err := utils.NewAccessToken(authTestSecret, 7, "ana@example.com", -5)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBearerAuthResolvesIdentity(t *testing.T) {
	e := authTestServer()

	tok, err := utils.NewAccessToken(authTestSecret, 42, "ana@example.com", 5)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, fmt.Sprintf(`{"user_id":%d,"email":%q}`, 42, "ana@example.com"), rec.Body.String())
}
