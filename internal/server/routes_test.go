package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/enroll/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(&config.Config{
		SessionSecret:      "a-very-secret-key-for-testing-!",
		AccountAPIProvider: "mock",
		WizardTTL:          time.Minute,
		RateLimitPerMin:    2,
	})
	require.NoError(t, err)
	s.RegisterRoutes()
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.E.ServeHTTP(rec, req)
	return rec
}

func TestNew_RejectsUnknownProvider(t *testing.T) {
	_, err := New(&config.Config{AccountAPIProvider: "soap", WizardTTL: time.Minute})
	assert.Error(t, err)
}

func TestRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/register", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Verify Your Identity")
	assert.Equal(t, 1, s.Store.Len())

	for _, c := range rec.Result().Cookies() {
		assert.True(t, c.HttpOnly, c.Name)
	}
}

func TestRoutes_SubmissionsAreRateLimited(t *testing.T) {
	s := newTestServer(t)
	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/change-password", strings.NewReader(url.Values{"token": {"t"}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.RemoteAddr = "203.0.113.9:1000"
		return serve(s, req).Code
	}

	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusTooManyRequests, post())
}
