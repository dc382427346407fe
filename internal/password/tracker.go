package password

// MsgMismatch is shown under the confirmation input while it differs from the password.
const MsgMismatch = "Passwords must match"

// Tracker follows the password and confirmation inputs and re-emits the accepted
// password after every change to either one.
type Tracker struct {
	password string
	confirm  string
	emit     func(string)
}

// NewTracker returns a Tracker that reports to emit. A nil emit is allowed.
func NewTracker(emit func(string)) *Tracker {
	return &Tracker{emit: emit}
}

// SetPassword records a change to the password input.
func (t *Tracker) SetPassword(pw string) {
	t.password = pw
	t.publish()
}

// SetConfirm records a change to the confirmation input.
func (t *Tracker) SetConfirm(confirm string) {
	t.confirm = confirm
	t.publish()
}

// Set updates both inputs and emits once.
func (t *Tracker) Set(pw, confirm string) {
	t.password, t.confirm = pw, confirm
	t.publish()
}

// Accepted is the value most recently emitted.
func (t *Tracker) Accepted() string {
	return Accepted(t.password, t.confirm)
}

// Criteria evaluates the current password.
func (t *Tracker) Criteria() Criteria {
	return Evaluate(t.password)
}

// Strength classifies the current password.
func (t *Tracker) Strength() Strength {
	return StrengthOf(t.password)
}

// ConfirmError returns MsgMismatch when a non-empty confirmation differs from the password.
func (t *Tracker) ConfirmError() string {
	if t.confirm != "" && t.confirm != t.password {
		return MsgMismatch
	}
	return ""
}

func (t *Tracker) publish() {
	if t.emit != nil {
		t.emit(t.Accepted())
	}
}
