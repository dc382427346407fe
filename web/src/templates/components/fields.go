package components

import (
	"strconv"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/nfrund/enroll/internal/validation"
)

// ValidatePath is the prefix of the per-field validation endpoint.
const ValidatePath = "/register/validate/"

const nameSuffix = " (as registered with Blue Cross & Blue Shield of Mississippi)"

// FieldDef describes how a form input is rendered.
type FieldDef struct {
	Field       validation.Field
	Label       string
	Type        string
	MaxLength   int
	Placeholder string
	Required    bool
	// Live fields validate on blur and refresh their error while typing.
	Live bool
}

var wizardFields = map[validation.Field]FieldDef{
	validation.FieldFirstName:    {Label: "Your First Name" + nameSuffix, Type: "text", MaxLength: 35, Required: true},
	validation.FieldLastName:     {Label: "Your Last Name" + nameSuffix, Type: "text", MaxLength: 60, Required: true},
	validation.FieldBirthDate:    {Label: "Your Date of Birth", Type: "text", MaxLength: 10, Placeholder: "MM/DD/YYYY", Required: true},
	validation.FieldZip:          {Label: "Your Zip Code", Type: "text", MaxLength: 5, Required: true},
	validation.FieldSubscriberID: {Label: "Subscriber ID", Type: "text", MaxLength: 17, Placeholder: "123456789M", Required: true},
	validation.FieldSSN:          {Label: "Last 4 digits of your SSN", Type: "password", MaxLength: 4, Required: true},
	validation.FieldCode:         {Label: "Unique code from BCBSMS", Type: "text", MaxLength: 7, Required: true},

	validation.FieldUsername:      {Label: "Please create a username", Type: "text", MaxLength: 20, Required: true},
	validation.FieldEmail:         {Label: "Please create an email address", Type: "email", MaxLength: 70, Required: true},
	validation.FieldVerifiedEmail: {Label: "Please verify your email address", Type: "email", MaxLength: 70, Required: true},
	validation.FieldMobilePhone:   {Label: "Please enter a mobile phone number", Type: "tel", MaxLength: 12, Placeholder: "123-456-7980", Required: true},
	validation.FieldHomePhone:     {Label: "Please enter a home phone number", Type: "tel", MaxLength: 12, Placeholder: "123-456-7980"},
	validation.FieldAnswer1:       {Label: "Security Answer 1", Type: "text", MaxLength: 50, Required: true},
	validation.FieldAnswer2:       {Label: "Security Answer 2", Type: "text", MaxLength: 50, Required: true},
	validation.FieldAnswer3:       {Label: "Security Answer 3", Type: "text", MaxLength: 50, Required: true},
	validation.FieldTerms:         {Label: "I have read and agree to the Terms & Conditions", Type: "checkbox", Required: true},
}

func init() {
	for f, def := range wizardFields {
		def.Field = f
		def.Live = true
		wizardFields[f] = def
	}
}

// Definition returns the definition of a wizard field that accepts live validation.
func Definition(f validation.Field) (FieldDef, bool) {
	def, ok := wizardFields[f]
	return def, ok
}

// MustDefinition is Definition for fields known to exist.
func MustDefinition(f validation.Field) FieldDef {
	def, ok := wizardFields[f]
	if !ok {
		panic("components: no definition for field " + string(f))
	}
	return def
}

// GroupID is the element ID of the field's label, input and error.
func GroupID(f validation.Field) string { return "group-" + string(f) }

// ErrorID is the element ID of the field's error message.
func ErrorID(f validation.Field) string { return "error-" + string(f) }

// InputID is the element ID of the field's input.
func InputID(f validation.Field) string { return "input-" + string(f) }

// FieldGroup renders a field's label, input and error message. A live field posts
// itself on blur and the response replaces the whole group.
func FieldGroup(def FieldDef, value, errMsg string) g.Node {
	if def.Type == "checkbox" {
		return Div(ID(GroupID(def.Field)), Class("field field-checkbox"),
			Input(Type("checkbox"), Name(string(def.Field)), ID(InputID(def.Field)), Value("true"),
				g.If(validation.IsChecked(value), Checked()),
				g.If(def.Live, g.Group{
					hx.Post(ValidatePath + string(def.Field)),
					hx.Trigger("change"),
					hx.Target("#" + GroupID(def.Field)),
					hx.Swap("outerHTML"),
				}),
			),
			Label(For(InputID(def.Field)), requiredMark(def), g.Text(def.Label)),
			FieldError(def, errMsg),
		)
	}

	return Div(ID(GroupID(def.Field)), Class("field"),
		Label(For(InputID(def.Field)), requiredMark(def), g.Text(def.Label)),
		Input(Type(def.Type), Name(string(def.Field)), ID(InputID(def.Field)), Value(value),
			g.If(def.MaxLength > 0, MaxLength(strconv.Itoa(def.MaxLength))),
			g.If(def.Placeholder != "", Placeholder(def.Placeholder)),
			g.If(errMsg != "", g.Group{Class("invalid"), Aria("invalid", "true")}),
			g.If(def.Live, g.Group{
				hx.Post(ValidatePath + string(def.Field)),
				hx.Trigger("blur"),
				hx.Target("#" + GroupID(def.Field)),
				hx.Swap("outerHTML"),
			}),
		),
		FieldError(def, errMsg),
	)
}

// FieldError renders the error message of a field. For live text inputs it also
// listens for typing and replaces itself with the refreshed message.
func FieldError(def FieldDef, msg string) g.Node {
	live := def.Live && def.Type != "checkbox"
	return Span(ID(ErrorID(def.Field)), Class("field-error"), Role("alert"),
		g.If(live, g.Group{
			hx.Post(ValidatePath + string(def.Field) + "?mode=change"),
			hx.Trigger("input changed delay:300ms from:#" + InputID(def.Field)),
			hx.Include("#" + InputID(def.Field)),
			hx.Swap("outerHTML"),
		}),
		g.Text(msg),
	)
}

// FieldErrorOOB renders a field's error for an out-of-band swap alongside another field's response.
func FieldErrorOOB(def FieldDef, msg string) g.Node {
	return Span(ID(ErrorID(def.Field)), Class("field-error"), Role("alert"), hx.SwapOOB("true"), g.Text(msg))
}

// ErrorText renders a plain error message for checks that are not tied to one input.
func ErrorText(id, msg string) g.Node {
	return Div(ID(id), Class("field-error"), Role("alert"), g.If(msg != "", P(g.Text(msg))))
}

func requiredMark(def FieldDef) g.Node {
	return g.If(def.Required, Span(Class("required"), g.Text("*")))
}
