package server

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/enroll/internal/middleware"
)

// newErrorTestServer routes handler at /boom behind the request logger and captures the log output.
func newErrorTestServer(t *testing.T, handler echo.HandlerFunc) (*echo.Echo, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	original := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(original) })

	e := echo.New()
	setupErrorHandling(e)
	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)
	e.GET("/boom", handler)
	return e, &logs
}

func TestErrorHandling_UnhandledErrorLogsStack(t *testing.T) {
	e, logs := newErrorTestServer(t, func(c echo.Context) error {
		return errors.New("wizard store unavailable")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	out := logs.String()
	assert.Contains(t, out, "Internal Server Error (Unhandled)")
	assert.Contains(t, out, `error="wizard store unavailable"`)
	assert.Contains(t, out, "path=/boom")
	assert.Contains(t, out, "stack_trace=")
	assert.Contains(t, out, "request_id="+rec.Header().Get(echo.HeaderXRequestID))
}

func TestErrorHandling_ClientErrorsAreNotLogged(t *testing.T) {
	e, logs := newErrorTestServer(t, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission.")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid form submission.")
	assert.Empty(t, logs.String())
}

func TestErrorHandling_ServerHTTPErrorsAreLogged(t *testing.T) {
	e, logs := newErrorTestServer(t, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadGateway, "account API down")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, logs.String(), `msg="Internal Server Error"`)
	assert.NotContains(t, logs.String(), "stack_trace=")
}
