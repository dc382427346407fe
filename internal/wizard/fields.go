package wizard

import (
	"time"

	"github.com/nfrund/enroll/internal/validation"
)

// FieldResult is the outcome of a single field edit, as rendered next to the input.
type FieldResult struct {
	Field validation.Field
	// Value is the stored value after formatting.
	Value string
	Error string
	// Related holds other fields of the step whose rule depends on this one and was re-checked.
	Related []FieldResult
}

// formStep is implemented by the steps that accept per-field input.
type formStep interface {
	value(field validation.Field) (string, bool)
	set(field validation.Field, value string) bool
	validationContext(now time.Time) validation.Context
	errors() validation.Errors
}

// dependentStep is implemented by steps where one field's rule reads another field.
type dependentStep interface {
	dependents(field validation.Field) []validation.Field
}

// format applies the input mask for fields that have one.
func format(field validation.Field, value string) string {
	switch field {
	case validation.FieldBirthDate:
		return validation.FormatDate(value)
	case validation.FieldZip:
		return validation.FormatZip(value)
	case validation.FieldMobilePhone, validation.FieldHomePhone:
		return validation.FormatPhone(value)
	default:
		return value
	}
}

// applyInput stores value for field and validates it. A blur records the result
// authoritatively; a change only clears or refreshes an error already shown.
func applyInput(s formStep, field validation.Field, value string, now time.Time, blur bool) (FieldResult, bool) {
	value = format(field, value)
	if !s.set(field, value) {
		return FieldResult{}, false
	}
	ctx := s.validationContext(now)
	record(s.errors(), field, validation.Validate(field, value, ctx), blur)
	result := FieldResult{Field: field, Value: value, Error: s.errors().Get(field)}

	if ds, ok := s.(dependentStep); ok {
		for _, dep := range ds.dependents(field) {
			v, _ := s.value(dep)
			record(s.errors(), dep, validation.Validate(dep, v, ctx), blur)
			result.Related = append(result.Related, FieldResult{Field: dep, Value: v, Error: s.errors().Get(dep)})
		}
	}
	return result, true
}

func record(errs validation.Errors, field validation.Field, msg string, blur bool) {
	if blur {
		errs.Blur(field, msg)
	} else {
		errs.Change(field, msg)
	}
}

// validateAll runs every field through Validate and reports whether all passed.
func validateAll(s formStep, fields []validation.Field, now time.Time) bool {
	ctx := s.validationContext(now)
	ok := true
	for _, f := range fields {
		v, _ := s.value(f)
		msg := validation.Validate(f, v, ctx)
		s.errors().Blur(f, msg)
		if msg != "" {
			ok = false
		}
	}
	return ok
}
