package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	g "maragu.dev/gomponents"
	hxhttp "maragu.dev/gomponents-htmx/http"

	"github.com/nfrund/enroll/internal/middleware"
	"github.com/nfrund/enroll/internal/validation"
	"github.com/nfrund/enroll/internal/view"
	"github.com/nfrund/enroll/internal/wizard"
	"github.com/nfrund/enroll/web/src/templates/components"
	"github.com/nfrund/enroll/web/src/templates/layouts"
	"github.com/nfrund/enroll/web/src/templates/pages"
)

// MsgRestarted is flashed after a plain form post resets the wizard.
const MsgRestarted = "Your registration has been restarted."

// RegistrationHandler serves the registration wizard. Every route except Start
// expects middleware.RequireWizard to have loaded the member's wizard.
type RegistrationHandler struct {
	store *wizard.Store
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(store *wizard.Store) *RegistrationHandler {
	return &RegistrationHandler{store: store}
}

// Start begins a fresh wizard (GET /register), dropping any previous one.
func (h *RegistrationHandler) Start(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	// 1. Discard the wizard from an earlier visit.
	if old := middleware.WizardID(c); old != "" {
		h.store.Delete(ctx, old)
	}

	// 2. Create a new one and remember it in the session cookie.
	wiz := h.store.Create(ctx)
	if err := middleware.SetWizardID(c, wiz.ID()); err != nil {
		return fmt.Errorf("saving wizard session: %w", err)
	}
	logger.Info("Registration started", "wizard_id", wiz.ID())

	// 3. Render the first step.
	return h.page(c, wiz)
}

// Current renders the wizard as a full page (GET /register/current).
func (h *RegistrationHandler) Current(c echo.Context) error {
	wiz, err := middleware.WizardFrom(c)
	if err != nil {
		return err
	}
	return h.page(c, wiz)
}

// SubmitIdentity handles POST /register/identity.
func (h *RegistrationHandler) SubmitIdentity(c echo.Context) error {
	wiz, err := middleware.WizardFrom(c)
	if err != nil {
		return err
	}
	var req IdentityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission.")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid ID type.")
	}
	return h.outcome(c, wiz, "identity", wiz.SubmitIdentity(c.Request().Context(), req.Form()))
}

// SubmitAccount handles POST /register/account.
func (h *RegistrationHandler) SubmitAccount(c echo.Context) error {
	wiz, err := middleware.WizardFrom(c)
	if err != nil {
		return err
	}
	var req AccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission.")
	}
	return h.outcome(c, wiz, "account", wiz.SubmitAccount(c.Request().Context(), req.Form()))
}

// SubmitSharing handles POST /register/sharing.
func (h *RegistrationHandler) SubmitSharing(c echo.Context) error {
	wiz, err := middleware.WizardFrom(c)
	if err != nil {
		return err
	}
	var req SharingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission.")
	}
	return h.outcome(c, wiz, "sharing", wiz.SubmitSharing(c.Request().Context(), req.Form()))
}

// LoadQuestions retries fetching the security questions (POST /register/account/questions).
func (h *RegistrationHandler) LoadQuestions(c echo.Context) error {
	wiz, err := middleware.WizardFrom(c)
	if err != nil {
		return err
	}
	return h.outcome(c, wiz, "questions", wiz.LoadQuestions(c.Request().Context()))
}

// Reset discards the wizard's progress (POST /register/reset).
func (h *RegistrationHandler) Reset(c echo.Context) error {
	wiz, err := middleware.WizardFrom(c)
	if err != nil {
		return err
	}
	wiz.Reset(c.Request().Context())
	middleware.FromContext(c.Request().Context()).Info("Registration reset")
	// htmx swaps the fresh form in place; a full page load gets a banner instead.
	if !hxhttp.IsRequest(c.Request().Header) {
		view.SetFlashSuccess(c, MsgRestarted)
	}
	return h.respond(c, wiz)
}

// ValidateField handles POST /register/validate/:field. A blur returns the whole
// field group with the formatted value; mode=change returns only the error message.
func (h *RegistrationHandler) ValidateField(c echo.Context) error {
	wiz, err := middleware.WizardFrom(c)
	if err != nil {
		return err
	}
	field := validation.Field(c.Param("field"))
	def, ok := components.Definition(field)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Code: "unknown_field", Message: "Unknown field: " + string(field)})
	}

	change := c.QueryParam("mode") == "change"
	result, err := wiz.Input(field, c.FormValue(string(field)), !change)
	if err != nil {
		return h.stale(c, wiz, err)
	}
	nodes := g.Group{}
	if change {
		nodes = append(nodes, components.FieldError(def, result.Error))
	} else {
		nodes = append(nodes, components.FieldGroup(def, result.Value, result.Error))
	}
	for _, rel := range result.Related {
		nodes = append(nodes, components.FieldErrorOOB(components.MustDefinition(rel.Field), rel.Error))
	}
	return c.Render(http.StatusOK, "", nodes)
}

// SetIDType switches the identifier input (POST /register/identity/idtype).
func (h *RegistrationHandler) SetIDType(c echo.Context) error {
	wiz, err := middleware.WizardFrom(c)
	if err != nil {
		return err
	}
	if err := wiz.SetIDType(validation.ParseIDType(c.FormValue("idType"))); err != nil {
		return h.stale(c, wiz, err)
	}
	return c.Render(http.StatusOK, "", pages.IdentifierFields(wiz.Snapshot().Identity))
}

// PasswordMeter re-evaluates the password inputs (POST /register/account/password).
func (h *RegistrationHandler) PasswordMeter(c echo.Context) error {
	wiz, err := middleware.WizardFrom(c)
	if err != nil {
		return err
	}
	var req PasswordMeterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission.")
	}
	meter, err := wiz.SetPassword(req.Password, req.ConfirmPassword)
	if err != nil {
		return h.stale(c, wiz, err)
	}
	return c.Render(http.StatusOK, "", pages.PasswordMeter(meter, wiz.Snapshot().Account.Errors.Get(wizard.FieldPassword)))
}

// SharingChoice applies one checkbox change (POST /register/sharing/choice).
func (h *RegistrationHandler) SharingChoice(c echo.Context) error {
	wiz, err := middleware.WizardFrom(c)
	if err != nil {
		return err
	}
	var req SharingChoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission.")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown sharing choice.")
	}
	if err := wiz.ChooseSharing(req.Box == "allow", req.Checked()); err != nil {
		return h.stale(c, wiz, err)
	}
	snap := wiz.Snapshot()
	return c.Render(http.StatusOK, "", pages.SharingChoices(snap.Sharing, snap.Record))
}

// outcome logs the result of a submission and shows the wizard. Expected failures
// are already recorded in the wizard's state; anything else is a server error.
func (h *RegistrationHandler) outcome(c echo.Context, wiz *wizard.Coordinator, action string, err error) error {
	logger := middleware.FromContext(c.Request().Context()).With("action", action)
	switch {
	case err == nil:
		current := wiz.Current()
		logger.Info("Registration step accepted", "current_step", current.String())
		if current == wizard.StepComplete {
			return h.finish(c, wiz)
		}
	case errors.Is(err, wizard.ErrValidation), errors.Is(err, wizard.ErrRejected):
		logger.Info("Registration step not accepted", "error", err)
	case errors.Is(err, wizard.ErrSubmissionInFlight),
		errors.Is(err, wizard.ErrStepNotActive),
		errors.Is(err, wizard.ErrComplete),
		errors.Is(err, wizard.ErrStaleResponse):
		logger.Warn("Registration submission ignored", "error", err)
	default:
		return fmt.Errorf("registration %s: %w", action, err)
	}
	return h.respond(c, wiz)
}

// finish drops a completed wizard and renders its final page directly, since
// /register/current has nothing left to show.
func (h *RegistrationHandler) finish(c echo.Context, wiz *wizard.Coordinator) error {
	snap := wiz.Snapshot()
	h.store.Delete(c.Request().Context(), wiz.ID())
	if err := middleware.ClearWizardID(c); err != nil {
		return fmt.Errorf("clearing wizard session: %w", err)
	}
	middleware.FromContext(c.Request().Context()).Info("Registration complete")

	if hxhttp.IsRequest(c.Request().Header) {
		return c.Render(http.StatusOK, "", pages.Wizard(snap))
	}
	return c.Render(http.StatusOK, "", layouts.Base(snap.Current.Title(), view.GetFlashData(c), pages.Wizard(snap)))
}

// stale answers a fragment request made for a step that is no longer active by
// replacing the whole wizard instead of the fragment's target.
func (h *RegistrationHandler) stale(c echo.Context, wiz *wizard.Coordinator, err error) error {
	if !errors.Is(err, wizard.ErrStepNotActive) && !errors.Is(err, wizard.ErrComplete) {
		return err
	}
	middleware.FromContext(c.Request().Context()).Debug("Fragment request for inactive step", "error", err)
	hxhttp.SetRetarget(c.Response().Header(), "#wizard")
	hxhttp.SetReswap(c.Response().Header(), "outerHTML")
	return c.Render(http.StatusOK, "", pages.Wizard(wiz.Snapshot()))
}

// respond swaps the wizard for htmx requests and redirects plain form posts.
func (h *RegistrationHandler) respond(c echo.Context, wiz *wizard.Coordinator) error {
	if hxhttp.IsRequest(c.Request().Header) {
		return c.Render(http.StatusOK, "", pages.Wizard(wiz.Snapshot()))
	}
	return c.Redirect(http.StatusSeeOther, pages.CurrentPath)
}

// page renders the wizard inside the site layout.
func (h *RegistrationHandler) page(c echo.Context, wiz *wizard.Coordinator) error {
	snap := wiz.Snapshot()
	return c.Render(http.StatusOK, "", layouts.Base(snap.Current.Title(), view.GetFlashData(c), pages.Wizard(snap)))
}
