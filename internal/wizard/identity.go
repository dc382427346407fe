package wizard

import (
	"maps"
	"strings"
	"time"

	"github.com/nfrund/enroll/internal/domain"
	"github.com/nfrund/enroll/internal/validation"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// IdentityForm holds the identity verification inputs.
type IdentityForm struct {
	FirstName    string
	LastName     string
	BirthDate    string
	Zip          string
	IDType       validation.IDType
	SubscriberID string
	SSN          string
	Code         string
}

var identityFields = []validation.Field{
	validation.FieldFirstName,
	validation.FieldLastName,
	validation.FieldBirthDate,
	validation.FieldZip,
	validation.FieldSubscriberID,
	validation.FieldSSN,
	validation.FieldCode,
}

// IdentityStep is the state of the first step.
type IdentityStep struct {
	Form    IdentityForm
	Errors  validation.Errors
	Status  Status
	Message string
}

func newIdentityStep() *IdentityStep {
	return &IdentityStep{
		Form:   IdentityForm{IDType: validation.IDTypeCode},
		Errors: validation.Errors{},
	}
}

func (s *IdentityStep) value(field validation.Field) (string, bool) {
	switch field {
	case validation.FieldFirstName:
		return s.Form.FirstName, true
	case validation.FieldLastName:
		return s.Form.LastName, true
	case validation.FieldBirthDate:
		return s.Form.BirthDate, true
	case validation.FieldZip:
		return s.Form.Zip, true
	case validation.FieldSubscriberID:
		return s.Form.SubscriberID, true
	case validation.FieldSSN:
		return s.Form.SSN, true
	case validation.FieldCode:
		return s.Form.Code, true
	default:
		return "", false
	}
}

func (s *IdentityStep) set(field validation.Field, value string) bool {
	switch field {
	case validation.FieldFirstName:
		s.Form.FirstName = value
	case validation.FieldLastName:
		s.Form.LastName = value
	case validation.FieldBirthDate:
		s.Form.BirthDate = value
	case validation.FieldZip:
		s.Form.Zip = value
	case validation.FieldSubscriberID:
		s.Form.SubscriberID = value
	case validation.FieldSSN:
		s.Form.SSN = value
	case validation.FieldCode:
		s.Form.Code = value
	default:
		return false
	}
	return true
}

func (s *IdentityStep) validationContext(now time.Time) validation.Context {
	return validation.Context{IDType: s.Form.IDType, Now: now}
}

func (s *IdentityStep) errors() validation.Errors { return s.Errors }

// setIDType switches the identifier and clears every identifier value and error.
func (s *IdentityStep) setIDType(t validation.IDType) {
	s.Form.IDType = t
	s.Form.SubscriberID, s.Form.SSN, s.Form.Code = "", "", ""
	for _, f := range []validation.Field{validation.FieldSubscriberID, validation.FieldSSN, validation.FieldCode} {
		s.Errors.Set(f, "")
	}
}

// load replaces the form with a submitted one, keeping masks applied.
func (s *IdentityStep) load(f IdentityForm) {
	f.IDType = validation.ParseIDType(string(f.IDType))
	f.BirthDate = format(validation.FieldBirthDate, f.BirthDate)
	f.Zip = format(validation.FieldZip, f.Zip)
	// Only the selected identifier is sent.
	switch f.IDType {
	case validation.IDTypeSubscriberID:
		f.SSN, f.Code = "", ""
	case validation.IDTypeSSN:
		f.SubscriberID, f.Code = "", ""
	default:
		f.SubscriberID, f.SSN = "", ""
	}
	s.Form = f
}

func (s *IdentityStep) request() domain.VerifyRequest {
	return domain.VerifyRequest{
		FirstName:    upperCase(strings.TrimSpace(s.Form.FirstName)),
		LastName:     upperCase(strings.TrimSpace(s.Form.LastName)),
		SubscriberID: upperCase(s.Form.SubscriberID),
		ZipCode:      s.Form.Zip,
		BirthDate:    s.Form.BirthDate,
		UniqueCode:   s.Form.Code,
		SSN:          strings.ReplaceAll(s.Form.SSN, "-", ""),
	}
}

func (s *IdentityStep) clone() IdentityStep {
	c := *s
	c.Errors = cloneErrors(s.Errors)
	return c
}

func cloneErrors(e validation.Errors) validation.Errors {
	if e == nil {
		return validation.Errors{}
	}
	return maps.Clone(e)
}

// upperCase uses a fresh Caser per call; Casers are not safe for concurrent use.
func upperCase(s string) string {
	return cases.Upper(language.Und).String(s)
}
