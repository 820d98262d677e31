package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgauth "github.com/cutiefy/cutiefy-backend/pkg/auth"
	"github.com/cutiefy/cutiefy-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwtConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret-test-secret-test-secret",
		Issuer:            "cutiefy",
		ExpirationMinutes: 60,
	}
}

func protected(t *testing.T, cfg config.JWTConfig) (http.Handler, *string) {
	t.Helper()
	var seenEmail string
	handler := AdminAuth(cfg, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenEmail = AdminEmailFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	return handler, &seenEmail
}

func TestAdminAuthAcceptsValidToken(t *testing.T) {
	cfg := jwtConfig()
	token, err := pkgauth.MintAdminToken(cfg, time.Now(), "admin@cutiefy.in")
	require.NoError(t, err)

	handler, seenEmail := protected(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "admin@cutiefy.in", *seenEmail)
}

func TestAdminAuthRejectsMissingToken(t *testing.T) {
	handler, _ := protected(t, jwtConfig())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuthRejectsExpiredToken(t *testing.T) {
	cfg := jwtConfig()
	token, err := pkgauth.MintAdminToken(cfg, time.Now().Add(-2*time.Hour), "admin@cutiefy.in")
	require.NoError(t, err)

	handler, _ := protected(t, jwtConfig())

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuthRejectsGarbageToken(t *testing.T) {
	handler, _ := protected(t, jwtConfig())

	req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
