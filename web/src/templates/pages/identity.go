package pages

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/nfrund/enroll/internal/validation"
	"github.com/nfrund/enroll/internal/wizard"
	"github.com/nfrund/enroll/web/src/templates/components"
)

type idOption struct {
	Type  validation.IDType
	Label string
}

var idOptions = []idOption{
	{validation.IDTypeCode, "Unique code from BCBSMS"},
	{validation.IDTypeSubscriberID, "Subscriber ID"},
	{validation.IDTypeSSN, "Last 4 digits of your SSN"},
}

// Identity renders the identity verification step.
func Identity(s wizard.IdentityStep) g.Node {
	field := func(f validation.Field, value string) g.Node {
		return components.FieldGroup(components.MustDefinition(f), value, s.Errors.Get(f))
	}

	return wizardForm("identity-form", IdentityPath,
		H4(g.Text("Verify Your Identity")),
		P(Class("id-selection"),
			Span(Class("required"), g.Text("*")),
			g.Text("Please select ID type then enter your corresponding identification information in the field below."),
		),
		Select(Name("idType"), ID("input-idType"), Aria("label", "ID type"),
			hx.Post(IDTypePath), hx.Trigger("change"), hx.Target("#identity-ids"), hx.Swap("outerHTML"),
			g.Map(idOptions, func(o idOption) g.Node {
				return Option(Value(string(o.Type)), g.If(o.Type == s.Form.IDType, Selected()), g.Text(o.Label))
			}),
		),
		IdentifierFields(s),
		Hr(),
		field(validation.FieldFirstName, s.Form.FirstName),
		field(validation.FieldLastName, s.Form.LastName),
		field(validation.FieldBirthDate, s.Form.BirthDate),
		field(validation.FieldZip, s.Form.Zip),
		components.StatusMessage(s.Status, s.Message),
		components.SubmitButton(s.Status, "Continue"),
	)
}

// IdentifierFields renders the input for the selected ID type.
func IdentifierFields(s wizard.IdentityStep) g.Node {
	var f validation.Field
	var value string
	switch s.Form.IDType {
	case validation.IDTypeSubscriberID:
		f, value = validation.FieldSubscriberID, s.Form.SubscriberID
	case validation.IDTypeSSN:
		f, value = validation.FieldSSN, s.Form.SSN
	default:
		f, value = validation.FieldCode, s.Form.Code
	}
	return Div(ID("identity-ids"),
		components.FieldGroup(components.MustDefinition(f), value, s.Errors.Get(f)),
	)
}
