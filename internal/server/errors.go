package server

import (
	"errors"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/enroll/internal/middleware"
)

// setupErrorHandling installs an error handler that logs unexpected handler errors
// with a stack trace before echo writes the response.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		logger := middleware.FromContext(c.Request().Context())

		var he *echo.HTTPError
		if errors.As(err, &he) {
			if he.Code >= 500 {
				logger.Error("Internal Server Error", "error", err, "path", c.Path())
			}
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		logger.Error("Internal Server Error (Unhandled)",
			"error", err,
			"path", c.Path(),
			"stack_trace", string(debug.Stack()),
		)
		e.DefaultHTTPErrorHandler(err, c)
	}
}
