package wizard

import "github.com/nfrund/enroll/internal/validation"

// FieldSharing is the error key for the allow/deny selection.
const FieldSharing validation.Field = "selection"

// SharingForm holds the account-sharing choice. Allow and Deny are mutually exclusive.
type SharingForm struct {
	Allow bool
	Deny  bool
}

// SharingStep is the state of the optional third step.
type SharingStep struct {
	Form    SharingForm
	Errors  validation.Errors
	Status  Status
	Message string
}

func newSharingStep() *SharingStep {
	return &SharingStep{Errors: validation.Errors{}}
}

// choose applies one checkbox change. Checking one box unchecks the other.
func (s *SharingStep) choose(allow, checked bool) {
	if allow {
		s.Form.Allow = checked
		if checked {
			s.Form.Deny = false
		}
	} else {
		s.Form.Deny = checked
		if checked {
			s.Form.Allow = false
		}
	}
	s.Errors.Set(FieldSharing, "")
}

func (s *SharingStep) load(f SharingForm) {
	if f.Allow && f.Deny {
		f.Deny = false
	}
	s.Form = f
}

func (s *SharingStep) validate() bool {
	if !s.Form.Allow && !s.Form.Deny {
		s.Errors.Blur(FieldSharing, MsgSharingSelection)
		return false
	}
	s.Errors.Set(FieldSharing, "")
	return true
}

func (s *SharingStep) clone() SharingStep {
	c := *s
	c.Errors = cloneErrors(s.Errors)
	return c
}
