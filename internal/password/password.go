package password

import (
	"unicode/utf8"
)

const (
	// MinLength is the shortest acceptable password.
	MinLength = 8
	// StrongLength is the length at which a fully valid password counts as strong.
	StrongLength = 12
)

// Strength is the coarse classification shown next to the password input.
type Strength string

const (
	Weak     Strength = "Weak"
	Moderate Strength = "Moderate"
	Strong   Strength = "Strong"
)

// Criteria reports which policy rules a password satisfies.
type Criteria struct {
	MinLength  bool
	HasLower   bool
	HasUpper   bool
	HasDigit   bool
	HasSpecial bool
}

// Valid reports whether every rule holds.
func (c Criteria) Valid() bool {
	return c.MinLength && c.HasLower && c.HasUpper && c.HasDigit && c.HasSpecial
}

// Evaluate checks pw against the policy. Anything outside [A-Za-z0-9] counts as special.
func Evaluate(pw string) Criteria {
	c := Criteria{MinLength: utf8.RuneCountInString(pw) >= MinLength}
	for _, r := range pw {
		switch {
		case r >= 'a' && r <= 'z':
			c.HasLower = true
		case r >= 'A' && r <= 'Z':
			c.HasUpper = true
		case r >= '0' && r <= '9':
			c.HasDigit = true
		default:
			c.HasSpecial = true
		}
	}
	return c
}

// StrengthOf classifies pw.
func StrengthOf(pw string) Strength {
	if pw == "" || !Evaluate(pw).Valid() {
		return Weak
	}
	if utf8.RuneCountInString(pw) < StrongLength {
		return Moderate
	}
	return Strong
}

// Accepted returns pw when it satisfies the policy and confirm matches it, otherwise "".
func Accepted(pw, confirm string) string {
	if Evaluate(pw).Valid() && pw == confirm {
		return pw
	}
	return ""
}

// Problem returns the first policy rule pw breaks, or "" when it is valid.
func Problem(pw string) string {
	c := Evaluate(pw)
	switch {
	case !c.MinLength:
		return "Password must be at least 8 characters long."
	case !c.HasLower:
		return "Password must contain a lowercase letter."
	case !c.HasUpper:
		return "Password must contain an uppercase letter."
	case !c.HasDigit:
		return "Password must contain a number."
	case !c.HasSpecial:
		return "Password must contain a special character."
	default:
		return ""
	}
}
