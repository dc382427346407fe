package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/enroll/web/src/templates/pages"
)

// HomeHandler handles requests for the home page.
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// HomeGet sends visitors to the registration wizard.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	return c.Redirect(http.StatusFound, pages.RegisterPath)
}

// Health reports liveness.
func (h *HomeHandler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
