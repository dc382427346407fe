package components

import (
	g "maragu.dev/gomponents"
	gc "maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"

	"github.com/nfrund/enroll/internal/wizard"
)

// Breadcrumbs shows the steps of the wizard with the current one highlighted.
func Breadcrumbs(crumbs []wizard.Crumb) g.Node {
	return Nav(Aria("label", "Registration progress"),
		Ol(Class("crumbs"),
			g.Map(crumbs, func(c wizard.Crumb) g.Node {
				return Li(
					gc.Classes{"crumb": true, "current": c.Current, "complete": c.Complete},
					g.If(c.Current, Aria("current", "step")),
					g.Text(c.Title),
				)
			}),
		),
	)
}

// StatusMessage renders the response message of a step, if any.
func StatusMessage(status wizard.Status, msg string) g.Node {
	if msg == "" {
		return nil
	}
	kind := "error"
	if status == wizard.StatusSuccess {
		kind = "success"
	}
	return Div(Class("status-message "+kind), Role("alert"), P(g.Text(msg)))
}

// SubmitButton is the Continue button of a step. It is disabled while a submission is in flight.
func SubmitButton(status wizard.Status, label string) g.Node {
	return Button(Type("submit"), Class("btn"),
		g.If(status == wizard.StatusSubmitting, Disabled()),
		g.Text(label),
	)
}
