package pages

import (
	"strconv"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	gc "maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"

	"github.com/nfrund/enroll/internal/domain"
	"github.com/nfrund/enroll/internal/password"
	"github.com/nfrund/enroll/internal/validation"
	"github.com/nfrund/enroll/internal/wizard"
	"github.com/nfrund/enroll/web/src/templates/components"
)

var answerFields = [3]validation.Field{validation.FieldAnswer1, validation.FieldAnswer2, validation.FieldAnswer3}

// Account renders the account setup step.
func Account(s wizard.AccountStep) g.Node {
	field := func(f validation.Field, value string) g.Node {
		return components.FieldGroup(components.MustDefinition(f), value, s.Errors.Get(f))
	}
	terms := ""
	if s.Form.Terms {
		terms = "true"
	}

	return wizardForm("account-form", AccountPath,
		H4(g.Text("Step 2: Set Up Your Account")),
		field(validation.FieldUsername, s.Form.Username),
		field(validation.FieldEmail, s.Form.Email),
		field(validation.FieldVerifiedEmail, s.Form.VerifiedEmail),
		field(validation.FieldMobilePhone, s.Form.MobilePhone),
		field(validation.FieldHomePhone, s.Form.HomePhone),
		PasswordInputs(s.Form.Password, s.Form.ConfirmPassword),
		PasswordMeter(s.Meter(), s.Errors.Get(wizard.FieldPassword)),
		SecurityQuestions(s),
		H4(g.Text("Terms & Conditions")),
		P(Class("terms"), g.Text("By creating a myBlue account you agree to use it only to access your own coverage and the information members have chosen to share with you.")),
		field(validation.FieldTerms, terms),
		components.StatusMessage(s.Status, s.Message),
		components.SubmitButton(s.Status, "Continue"),
		StartOver(),
	)
}

// PasswordInputs are the password and confirmation inputs. Typing in either
// refreshes the password meter.
func PasswordInputs(pw, confirm string) g.Node {
	input := func(name, label, value string) g.Node {
		id := "input-" + name
		return Div(Class("field"),
			Label(For(id), Span(Class("required"), g.Text("*")), g.Text(label)),
			Input(Type("password"), Name(name), ID(id), Value(value), AutoComplete("new-password"),
				hx.Post(PasswordPath), hx.Trigger("input changed delay:200ms"),
				hx.Target("#password-meter"), hx.Swap("outerHTML"),
				hx.Include("#input-password, #input-confirmPassword"),
			),
		)
	}
	return g.Group{
		input("password", "Please create a password", pw),
		input("confirmPassword", "Please confirm your password", confirm),
	}
}

// PasswordMeter lists the password rules, the strength and any mismatch.
func PasswordMeter(m wizard.PasswordMeter, errMsg string) g.Node {
	rule := func(ok bool, text string) g.Node {
		return Li(gc.Classes{"rule": true, "met": ok}, g.Text(text))
	}
	return Div(ID("password-meter"), Class("password-meter"), Aria("live", "polite"),
		Ul(
			rule(m.Criteria.MinLength, "At least "+strconv.Itoa(password.MinLength)+" characters"),
			rule(m.Criteria.HasLower, "A lowercase letter"),
			rule(m.Criteria.HasUpper, "An uppercase letter"),
			rule(m.Criteria.HasDigit, "A number"),
			rule(m.Criteria.HasSpecial, "A special character"),
		),
		P(Class("strength strength-"+string(m.Strength)), g.Text("Password strength: "+string(m.Strength))),
		g.If(m.ConfirmError != "", P(Class("field-error"), g.Text(m.ConfirmError))),
		g.If(errMsg != "", P(Class("field-error"), Role("alert"), g.Text(errMsg))),
	)
}

// SecurityQuestions renders the three question selects with their answers, or a
// retry button when the option lists could not be fetched.
func SecurityQuestions(s wizard.AccountStep) g.Node {
	if !s.QuestionsLoaded {
		return Div(ID("security-questions"), Class("security-questions"),
			P(g.Text("The security questions could not be loaded.")),
			Button(Type("button"), Class("btn-secondary"),
				hx.Post(QuestionsPath), hx.Target(wizardTarget), hx.Swap("outerHTML"),
				g.Text("Load security questions"),
			),
			components.ErrorText("error-"+string(wizard.FieldQuestions), s.Errors.Get(wizard.FieldQuestions)),
		)
	}

	return Div(ID("security-questions"), Class("security-questions"),
		g.Group(g.Map([]int{0, 1, 2}, func(i int) g.Node {
			return questionGroup(i, s.Questions[i], s.Form.Questions[i], s.Form.Answers[i], s.Errors.Get(answerFields[i]))
		})),
		components.ErrorText("error-"+string(wizard.FieldQuestions), s.Errors.Get(wizard.FieldQuestions)),
	)
}

func questionGroup(i int, options []domain.SecurityQuestion, selected, answer, answerErr string) g.Node {
	n := strconv.Itoa(i + 1)
	name := "question" + n
	return Div(Class("question"),
		Label(For("input-"+name), Span(Class("required"), g.Text("*")), g.Text("Security Question "+n)),
		Select(Name(name), ID("input-"+name),
			Option(Value(""), g.Text("Select a question")),
			g.Map(options, func(q domain.SecurityQuestion) g.Node {
				return Option(Value(q.Text), g.If(q.Text == selected, Selected()), g.Text(q.Text))
			}),
		),
		components.FieldGroup(components.MustDefinition(answerFields[i]), answer, answerErr),
	)
}
