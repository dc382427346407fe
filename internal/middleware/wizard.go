package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	hxhttp "maragu.dev/gomponents-htmx/http"

	"github.com/nfrund/enroll/internal/view"
	"github.com/nfrund/enroll/internal/wizard"
)

const (
	// WizardSessionName is the cookie session that carries the wizard ID.
	WizardSessionName = "wizard-session"
	wizardIDKey       = "wizard_id"
	wizardContextKey  = "wizard"

	// MsgSessionExpired is flashed when a request arrives for a wizard that no longer exists.
	MsgSessionExpired = "Your registration session has expired. Please start again."
)

// ErrNoWizard is returned by WizardFrom when the wizard middleware did not run.
var ErrNoWizard = errors.New("no registration wizard in request context")

// RequireWizard loads the wizard named by the session cookie and stores it in the echo context.
// Missing or expired wizards send the browser back to startPath with a flash message.
func RequireWizard(store *wizard.Store, startPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			logger := FromContext(c.Request().Context())

			// 1. Read the wizard ID from the session cookie.
			id := WizardID(c)

			// 2. Look the wizard up in the store.
			wiz, ok := store.Get(id)
			if !ok {
				logger.Info("Registration session not found", "has_cookie", id != "")
				view.SetFlashError(c, MsgSessionExpired)
				if hxhttp.IsRequest(c.Request().Header) {
					hxhttp.SetRedirect(c.Response().Header(), startPath)
					return c.NoContent(http.StatusOK)
				}
				return c.Redirect(http.StatusSeeOther, startPath)
			}

			// 3. Expose it to the handler and tag every later log line with it.
			c.Set(wizardContextKey, wiz)
			setLogger(c, logger.With("wizard_id", wiz.ID()))
			return next(c)
		}
	}
}

// WizardFrom returns the wizard loaded by RequireWizard.
func WizardFrom(c echo.Context) (*wizard.Coordinator, error) {
	wiz, ok := c.Get(wizardContextKey).(*wizard.Coordinator)
	if !ok || wiz == nil {
		return nil, ErrNoWizard
	}
	return wiz, nil
}

// WizardID returns the wizard ID stored in the session, or "" if there is none.
func WizardID(c echo.Context) string {
	sess, err := session.Get(WizardSessionName, c)
	if err != nil {
		return ""
	}
	id, _ := sess.Values[wizardIDKey].(string)
	return id
}

// SetWizardID stores id in the session cookie.
func SetWizardID(c echo.Context, id string) error {
	sess, err := session.Get(WizardSessionName, c)
	if err != nil {
		return err
	}
	sess.Values[wizardIDKey] = id
	return sess.Save(c.Request(), c.Response())
}

// ClearWizardID removes the wizard ID from the session cookie.
func ClearWizardID(c echo.Context) error {
	sess, err := session.Get(WizardSessionName, c)
	if err != nil {
		return err
	}
	delete(sess.Values, wizardIDKey)
	return sess.Save(c.Request(), c.Response())
}
