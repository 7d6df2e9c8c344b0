package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-jwt-secret")

func serve(t *testing.T, secret []byte, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.POST("/products", func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	}, RequireAdmin(secret))

	req := httptest.NewRequest(http.MethodPost, "/products", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequireAdmin_DisabledWithoutSecret(t *testing.T) {
	rec := serve(t, nil, "")
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	admin, err := SignAccessToken("1", "admin", AccessTokenTTL, testSecret)
	require.NoError(t, err)
	user, err := SignAccessToken("2", "user", AccessTokenTTL, testSecret)
	require.NoError(t, err)
	expired, err := SignAccessToken("1", "admin", -time.Minute, testSecret)
	require.NoError(t, err)
	foreign, err := SignAccessToken("1", "admin", AccessTokenTTL, []byte("other-secret"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{name: "admin token", header: "Bearer " + admin, code: http.StatusCreated},
		{name: "missing header", header: "", code: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", code: http.StatusUnauthorized},
		{name: "user role", header: "Bearer " + user, code: http.StatusForbidden},
		{name: "expired", header: "Bearer " + expired, code: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + foreign, code: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer not-a-jwt", code: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, testSecret, tt.header)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestParseAccessToken(t *testing.T) {
	raw, err := SignAccessToken("42", "admin", AccessTokenTTL, testSecret)
	require.NoError(t, err)

	claims, err := ParseAccessToken(raw, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}
