package pages

import (
	"strings"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/nfrund/enroll/internal/domain"
	"github.com/nfrund/enroll/internal/wizard"
	"github.com/nfrund/enroll/web/src/templates/components"
)

// Sharing renders the optional account-sharing step.
func Sharing(s wizard.SharingStep, record domain.IdentityRecord) g.Node {
	holder := policyHolder(record)
	return wizardForm("sharing-form", SharingPath,
		H4(g.Text("Step 3: Account Sharing")),
		P(
			g.Text("You have the ability to link your "), I(g.Text("my")),
			g.Text("Blue account with the other Members with the same Subscriber ID. "+
				"This allows those Members the option to see the Your Benefits, Your Claims, Your Rx, and Your Health information. "+
				"You can grant or revoke this access at any time by logging into www.bcbsms.com."),
		),
		P(
			g.Text("Because you are a dependent on their benefit plan, you will have the option to link your health information with "+holder+". "+
				"Please choose whether to grant permission to share access to your "), I(g.Text("my")),
			g.Text("Blue account, which includes health information about you, with "+holder+" by checking the appropriate box below."),
		),
		SharingChoices(s, record),
		components.StatusMessage(s.Status, s.Message),
		components.SubmitButton(s.Status, "Submit"),
		StartOver(),
	)
}

// SharingChoices renders the allow and deny checkboxes. Checking one unchecks the other.
func SharingChoices(s wizard.SharingStep, record domain.IdentityRecord) g.Node {
	holder := policyHolder(record)
	box := func(name string, checked bool, label string) g.Node {
		return Div(Class("field field-checkbox"),
			Input(Type("checkbox"), Name(name), ID(name), Value("true"),
				g.If(checked, Checked()),
				hx.Post(SharingChoicePath), hx.Trigger("change"),
				hx.Target("#sharing-choices"), hx.Swap("outerHTML"),
				g.Attr("hx-vals", `{"box":"`+name+`"}`),
			),
			Label(For(name), Class("bold"), g.Text(label)),
		)
	}
	return Div(ID("sharing-choices"),
		box("allow", s.Form.Allow, "I allow my health information to be shared with "+holder),
		box("deny", s.Form.Deny, "I DO NOT allow my health information to be shared with "+holder),
		components.ErrorText("error-"+string(wizard.FieldSharing), s.Errors.Get(wizard.FieldSharing)),
	)
}

func policyHolder(r domain.IdentityRecord) string {
	name := strings.TrimSpace(r.PolicyHolderFirstName + " " + r.PolicyHolderLastName)
	if name == "" {
		return "the Subscriber"
	}
	return name
}
