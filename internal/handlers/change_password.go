package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	hxhttp "maragu.dev/gomponents-htmx/http"

	"github.com/nfrund/enroll/internal/domain"
	"github.com/nfrund/enroll/internal/middleware"
	"github.com/nfrund/enroll/internal/validation"
	"github.com/nfrund/enroll/internal/view"
	"github.com/nfrund/enroll/internal/wizard"
	"github.com/nfrund/enroll/web/src/templates/layouts"
	"github.com/nfrund/enroll/web/src/templates/pages"
)

// ChangePasswordHandler lets a logged-in member replace their password. The member's
// session token arrives in the link (?token=) and travels in a hidden field.
type ChangePasswordHandler struct {
	api domain.AccountAPI
}

// NewChangePasswordHandler creates a new ChangePasswordHandler.
func NewChangePasswordHandler(api domain.AccountAPI) *ChangePasswordHandler {
	return &ChangePasswordHandler{api: api}
}

// ChangePasswordGet renders the form (GET /change-password).
func (h *ChangePasswordHandler) ChangePasswordGet(c echo.Context) error {
	return h.render(c, pages.ChangePasswordProps{Token: c.QueryParam("token")})
}

// ChangePasswordPost validates the form and calls the account API (POST /change-password).
func (h *ChangePasswordHandler) ChangePasswordPost(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	// 1. Bind the form.
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission.")
	}
	props := pages.ChangePasswordProps{Token: req.Token, Errors: validation.Errors{}}

	// 2. Validate it; nothing is sent until every field passes.
	if err := c.Validate(&req); err != nil {
		errs, err := fieldErrors(err, validation.Context{Password: req.NewPassword})
		if err != nil {
			return err
		}
		props.Status = wizard.StatusError
		if errs.Has("token") {
			delete(errs, "token")
			props.Message = wizard.Message(domain.OpChangePassword, &domain.APIError{Op: domain.OpChangePassword, Code: domain.CodeUnauthorized})
		}
		props.Errors = errs
		return h.render(c, props)
	}

	// 3. Call the account API.
	err := h.api.ChangePassword(ctx, req.Token, domain.ChangePasswordRequest{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		logger.Warn("Change password rejected", "code", domain.CodeOf(err))
		props.Status = wizard.StatusError
		props.Message = wizard.Message(domain.OpChangePassword, err)
		return h.render(c, props)
	}

	logger.Info("Password changed")
	props.Status = wizard.StatusSuccess
	props.Message = wizard.MsgPasswordChanged
	return h.render(c, props)
}

func (h *ChangePasswordHandler) render(c echo.Context, props pages.ChangePasswordProps) error {
	content := pages.ChangePassword(props)
	if hxhttp.IsRequest(c.Request().Header) {
		return c.Render(http.StatusOK, "", content)
	}
	return c.Render(http.StatusOK, "", layouts.Base("Change Password", view.GetFlashData(c), content))
}
