package pages

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/nfrund/enroll/internal/wizard"
	"github.com/nfrund/enroll/web/src/templates/components"
)

// Routes posted to by the wizard markup.
const (
	RegisterPath       = "/register"
	CurrentPath        = "/register/current"
	ResetPath          = "/register/reset"
	IdentityPath       = "/register/identity"
	IDTypePath         = "/register/identity/idtype"
	AccountPath        = "/register/account"
	PasswordPath       = "/register/account/password"
	QuestionsPath      = "/register/account/questions"
	SharingPath        = "/register/sharing"
	SharingChoicePath  = "/register/sharing/choice"
	ChangePasswordPath = "/change-password"
)

// MemberSiteURL is where members log in once registered.
const MemberSiteURL = "https://www.bcbsms.com"

const wizardTarget = "#wizard"

// Wizard renders the breadcrumbs and the active step. It is the unit swapped by htmx
// after every submission.
func Wizard(s wizard.Snapshot) g.Node {
	return Div(ID("wizard"), Class("wizard"),
		components.Breadcrumbs(s.Crumbs),
		activeStep(s),
	)
}

func activeStep(s wizard.Snapshot) g.Node {
	switch s.Current {
	case wizard.StepIdentity:
		return Identity(s.Identity)
	case wizard.StepAccount:
		return Account(s.Account)
	case wizard.StepSharing:
		return Sharing(s.Sharing, s.Record)
	default:
		return Complete()
	}
}

// wizardForm posts to action, falling back to a plain form post without htmx.
func wizardForm(id, action string, children ...g.Node) g.Node {
	return Form(ID(id), Method("post"), Action(action),
		hx.Post(action), hx.Target(wizardTarget), hx.Swap("outerHTML"),
		g.Attr("hx-disabled-elt", "find button[type='submit']"),
		g.Group(children),
	)
}

// Complete is shown once the last step succeeded.
func Complete() g.Node {
	return Div(Class("status-message success"), Role("status"),
		P(
			g.Text("Your "), I(g.Text("my")), g.Text("Blue Member Account is now complete. Please go to "),
			A(Href(MemberSiteURL), g.Text("BCBSMS.com")),
			g.Text(" and login with your username and password."),
		),
	)
}

// StartOver discards the wizard's progress.
func StartOver() g.Node {
	return Button(Type("button"), Class("btn-link"),
		hx.Post(ResetPath), hx.Target(wizardTarget), hx.Swap("outerHTML"),
		g.Attr("hx-confirm", "Discard your progress and start over?"),
		g.Text("Start over"),
	)
}
