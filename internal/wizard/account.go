package wizard

import (
	"slices"
	"strings"
	"time"

	"github.com/nfrund/enroll/internal/domain"
	"github.com/nfrund/enroll/internal/password"
	"github.com/nfrund/enroll/internal/validation"
)

// Error keys for account-step checks that are not single-field rules.
const (
	FieldQuestions validation.Field = "securityQuestions"
	FieldPassword  validation.Field = "password"
)

// AccountForm holds the account setup inputs.
type AccountForm struct {
	Username        string
	Email           string
	VerifiedEmail   string
	MobilePhone     string
	HomePhone       string
	Password        string
	ConfirmPassword string
	Questions       [3]string
	Answers         [3]string
	Terms           bool
}

var accountFields = []validation.Field{
	validation.FieldUsername,
	validation.FieldEmail,
	validation.FieldVerifiedEmail,
	validation.FieldMobilePhone,
	validation.FieldHomePhone,
	validation.FieldAnswer1,
	validation.FieldAnswer2,
	validation.FieldAnswer3,
	validation.FieldTerms,
}

var answerFields = [3]validation.Field{validation.FieldAnswer1, validation.FieldAnswer2, validation.FieldAnswer3}

// PasswordMeter is the live state of the password inputs.
type PasswordMeter struct {
	Criteria     password.Criteria
	Strength     password.Strength
	ConfirmError string
	// Accepted is the password emitted by the tracker, "" until it is acceptable and confirmed.
	Accepted string
}

// AccountStep is the state of the second step.
type AccountStep struct {
	Form      AccountForm
	Errors    validation.Errors
	Status    Status
	Message   string
	Questions domain.SecurityQuestionSet
	// QuestionsLoaded is set once the option lists were fetched.
	QuestionsLoaded bool
	// UsernameConflict marks the username as rejected by the availability check.
	UsernameConflict bool

	tracker  *password.Tracker
	accepted string
}

func newAccountStep() *AccountStep {
	s := &AccountStep{Errors: validation.Errors{}}
	s.tracker = password.NewTracker(func(pw string) { s.accepted = pw })
	return s
}

func (s *AccountStep) value(field validation.Field) (string, bool) {
	switch field {
	case validation.FieldUsername:
		return s.Form.Username, true
	case validation.FieldEmail:
		return s.Form.Email, true
	case validation.FieldVerifiedEmail:
		return s.Form.VerifiedEmail, true
	case validation.FieldMobilePhone:
		return s.Form.MobilePhone, true
	case validation.FieldHomePhone:
		return s.Form.HomePhone, true
	case validation.FieldTerms:
		if s.Form.Terms {
			return "true", true
		}
		return "", true
	}
	if i := slices.Index(answerFields[:], field); i >= 0 {
		return s.Form.Answers[i], true
	}
	return "", false
}

func (s *AccountStep) set(field validation.Field, value string) bool {
	switch field {
	case validation.FieldUsername:
		s.Form.Username = value
		s.UsernameConflict = false
	case validation.FieldEmail:
		s.Form.Email = value
	case validation.FieldVerifiedEmail:
		s.Form.VerifiedEmail = value
	case validation.FieldMobilePhone:
		s.Form.MobilePhone = value
	case validation.FieldHomePhone:
		s.Form.HomePhone = value
	case validation.FieldTerms:
		s.Form.Terms = validation.IsChecked(value)
	default:
		i := slices.Index(answerFields[:], field)
		if i < 0 {
			return false
		}
		s.Form.Answers[i] = value
	}
	return true
}

func (s *AccountStep) validationContext(now time.Time) validation.Context {
	return validation.Context{Email: s.Form.Email, Now: now}
}

func (s *AccountStep) errors() validation.Errors { return s.Errors }

// dependents re-checks the verification copy once the primary email changes.
func (s *AccountStep) dependents(field validation.Field) []validation.Field {
	if field == validation.FieldEmail && s.Form.VerifiedEmail != "" {
		return []validation.Field{validation.FieldVerifiedEmail}
	}
	return nil
}

// setPassword feeds both password inputs through the tracker.
func (s *AccountStep) setPassword(pw, confirm string) PasswordMeter {
	s.Form.Password, s.Form.ConfirmPassword = pw, confirm
	s.tracker.Set(pw, confirm)
	if s.accepted != "" {
		s.Errors.Set(FieldPassword, "")
	}
	return s.Meter()
}

// load replaces the form with a submitted one.
func (s *AccountStep) load(f AccountForm) {
	f.MobilePhone = format(validation.FieldMobilePhone, f.MobilePhone)
	f.HomePhone = format(validation.FieldHomePhone, f.HomePhone)
	if f.Username != s.Form.Username {
		s.UsernameConflict = false
	}
	s.Form = f
	s.tracker.Set(f.Password, f.ConfirmPassword)
}

// validate runs the field rules plus the question selection and password checks.
func (s *AccountStep) validate(now time.Time) bool {
	ok := validateAll(s, accountFields, now)

	selections := ""
	for _, q := range s.Form.Questions {
		if strings.TrimSpace(q) == "" {
			selections = MsgSelectQuestions
			break
		}
	}
	s.Errors.Blur(FieldQuestions, selections)

	pw := ""
	if s.accepted == "" {
		pw = MsgPasswordRequired
	}
	s.Errors.Blur(FieldPassword, pw)

	return ok && selections == "" && pw == ""
}

func (s *AccountStep) request(currentUsername string) domain.AccountSetupRequest {
	answers := make([]domain.SecurityAnswer, len(s.Form.Questions))
	for i := range s.Form.Questions {
		answers[i] = domain.SecurityAnswer{Question: s.Form.Questions[i], Answer: s.Form.Answers[i]}
	}
	return domain.AccountSetupRequest{
		CurrentUsername:   currentUsername,
		Username:          s.Form.Username,
		Email:             s.Form.Email,
		MobilePhone:       s.Form.MobilePhone,
		HomePhone:         s.Form.HomePhone,
		Password:          s.accepted,
		SecurityQuestions: answers,
	}
}

func (s *AccountStep) clone() AccountStep {
	c := *s
	c.Errors = cloneErrors(s.Errors)
	for i := range c.Questions {
		c.Questions[i] = slices.Clone(s.Questions[i])
	}
	c.tracker = nil
	return c
}

// Meter returns the password meter for a snapshot or the live step.
func (s AccountStep) Meter() PasswordMeter {
	return PasswordMeter{
		Criteria:     password.Evaluate(s.Form.Password),
		Strength:     password.StrengthOf(s.Form.Password),
		ConfirmError: confirmError(s.Form.Password, s.Form.ConfirmPassword),
		Accepted:     s.accepted,
	}
}

func confirmError(pw, confirm string) string {
	if confirm != "" && confirm != pw {
		return password.MsgMismatch
	}
	return ""
}
