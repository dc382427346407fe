package validation

// Errors maps a field name to its current error message. Only invalid fields have keys.
type Errors map[string]string

// Get returns the message for field, or "".
func (e Errors) Get(field Field) string {
	return e[string(field)]
}

// Has reports whether field currently has an error.
func (e Errors) Has(field Field) bool {
	_, ok := e[string(field)]
	return ok
}

// Set records msg for field, deleting the entry when msg is empty.
func (e Errors) Set(field Field, msg string) {
	if msg == "" {
		delete(e, string(field))
		return
	}
	e[string(field)] = msg
}

// Change applies the result of change-time validation: an existing error is cleared once
// the field becomes valid, or refreshed, but no new error is raised while typing.
func (e Errors) Change(field Field, msg string) {
	if e.Has(field) {
		e.Set(field, msg)
	}
}

// Blur applies the authoritative result of blur/submit-time validation.
func (e Errors) Blur(field Field, msg string) {
	e.Set(field, msg)
}

// Empty reports whether no field has an error.
func (e Errors) Empty() bool {
	return len(e) == 0
}
