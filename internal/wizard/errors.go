package wizard

import "errors"

var (
	// ErrValidation means the step's fields failed validation and no API call was made.
	ErrValidation = errors.New("wizard: validation failed")
	// ErrRejected wraps an account API failure. The step's Message holds the display string.
	ErrRejected = errors.New("wizard: submission rejected")
	// ErrSubmissionInFlight rejects a submit while the step is already submitting.
	ErrSubmissionInFlight = errors.New("wizard: submission already in flight")
	// ErrStepNotActive rejects input for a step that is not current.
	ErrStepNotActive = errors.New("wizard: step is not active")
	// ErrStaleResponse means the wizard moved on while the call was in flight; its result was discarded.
	ErrStaleResponse = errors.New("wizard: stale response discarded")
	// ErrComplete rejects any submission once the wizard has finished.
	ErrComplete = errors.New("wizard: registration already complete")
)
