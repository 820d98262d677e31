package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cutiefy/cutiefy-backend/pkg/config"
	"github.com/cutiefy/cutiefy-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

func sessionConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Env: "development"},
		Session: config.SessionConfig{CookieName: "cutiefy_session", TTL: 720 * time.Hour},
	}
}

func TestCartSessionMintsCookie(t *testing.T) {
	var captured string
	handler := CartSession(sessionConfig(), testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

	require.NotEmpty(t, captured)
	_, err := uuid.Parse(captured)
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "cutiefy_session", cookies[0].Name)
	assert.Equal(t, captured, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestCartSessionReusesCookie(t *testing.T) {
	sessionID := uuid.NewString()

	var captured string
	handler := CartSession(sessionConfig(), testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: "cutiefy_session", Value: sessionID})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, sessionID, captured)
	assert.Empty(t, rec.Result().Cookies(), "no new cookie when one is presented")
}

func TestCartSessionReplacesForgedCookie(t *testing.T) {
	var captured string
	handler := CartSession(sessionConfig(), testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: "cutiefy_session", Value: "../../etc/passwd"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	_, err := uuid.Parse(captured)
	require.NoError(t, err)
	require.Len(t, rec.Result().Cookies(), 1)
}
