package pages

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/nfrund/enroll/internal/validation"
	"github.com/nfrund/enroll/internal/wizard"
	"github.com/nfrund/enroll/web/src/templates/components"
)

var changePasswordFields = []components.FieldDef{
	{Field: validation.FieldCurrentPassword, Label: "Current Password", Type: "password", Required: true},
	{Field: validation.FieldNewPassword, Label: "New Password", Type: "password", Required: true},
	{Field: validation.FieldConfirmPassword, Label: "Confirm New Password", Type: "password", Required: true},
}

// ChangePasswordProps is the state of the change-password form.
type ChangePasswordProps struct {
	Token   string
	Errors  validation.Errors
	Status  wizard.Status
	Message string
}

// ChangePassword renders the change-password form, or the confirmation once it succeeded.
func ChangePassword(p ChangePasswordProps) g.Node {
	if p.Status == wizard.StatusSuccess {
		return Div(ID("change-password"),
			H4(g.Text("Change Password")),
			components.StatusMessage(p.Status, p.Message),
		)
	}
	return Div(ID("change-password"),
		H4(g.Text("Change Password")),
		Form(Method("post"), Action(ChangePasswordPath),
			hx.Post(ChangePasswordPath), hx.Target("#change-password"), hx.Swap("outerHTML"),
			g.Attr("hx-disabled-elt", "find button[type='submit']"),
			Input(Type("hidden"), Name("token"), Value(p.Token)),
			g.Map(changePasswordFields, func(def components.FieldDef) g.Node {
				return components.FieldGroup(def, "", p.Errors.Get(def.Field))
			}),
			components.StatusMessage(p.Status, p.Message),
			components.SubmitButton(p.Status, "Change Password"),
		),
	)
}
