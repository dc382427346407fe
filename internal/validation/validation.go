// Package validation holds the field rules shared by every wizard step.
// Validate is pure: the same field, value and context always produce the same message.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Field names a validated form input. The values double as HTML input names.
type Field string

const (
	FieldFirstName    Field = "firstName"
	FieldLastName     Field = "lastName"
	FieldBirthDate    Field = "birthDate"
	FieldZip          Field = "zip"
	FieldSubscriberID Field = "subscriberId"
	FieldSSN          Field = "ssn"
	FieldCode         Field = "code"

	FieldUsername      Field = "desiredUsername"
	FieldEmail         Field = "email"
	FieldVerifiedEmail Field = "verifiedEmail"
	FieldMobilePhone   Field = "mobileNumber"
	FieldHomePhone     Field = "homeNumber"
	FieldAnswer1       Field = "answer1"
	FieldAnswer2       Field = "answer2"
	FieldAnswer3       Field = "answer3"
	FieldTerms         Field = "terms"

	FieldCurrentPassword Field = "currentPassword"
	FieldNewPassword     Field = "newPassword"
	FieldConfirmPassword Field = "confirmPassword"
)

// IDType selects which identifier the member verifies with.
type IDType string

const (
	IDTypeCode         IDType = "code"
	IDTypeSubscriberID IDType = "subID"
	IDTypeSSN          IDType = "ssn"
)

// ParseIDType returns the IDType for s, falling back to the unique code.
func ParseIDType(s string) IDType {
	switch IDType(s) {
	case IDTypeSubscriberID, IDTypeSSN:
		return IDType(s)
	default:
		return IDTypeCode
	}
}

// Context carries the values a rule may depend on besides the field's own value.
type Context struct {
	IDType IDType
	// Email is the primary address the verification copy must equal.
	Email string
	// Password is the new password a confirmation must equal.
	Password string
	Now      time.Time
}

var (
	namePattern         = regexp.MustCompile(`(?i)^[A-Z'.-][ A-Z'.-]*$`)
	birthDatePattern    = regexp.MustCompile(`^(0[1-9]|1[0-2])/(0[1-9]|[12]\d|3[01])/(19|20)\d{2}$`)
	zipPattern          = regexp.MustCompile(`^\d{5}$`)
	alphanumericPattern = regexp.MustCompile(`(?i)^[A-Z0-9]+$`)
	digitsPattern       = regexp.MustCompile(`^\d+$`)
	subscriberMPattern  = regexp.MustCompile(`(?i)^\d{9}M$`)
	subscriberMShape    = regexp.MustCompile(`(?i)^\d+M$`)
	subscriberRPattern  = regexp.MustCompile(`(?i)^R\d{9}$`)
	subscriberRShape    = regexp.MustCompile(`(?i)^R\d+$`)
	emailCharsetPattern = regexp.MustCompile(`(?i)^[A-Z0-9_@.-][ A-Z0-9_@.-]*$`)
	emailShapePattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

const (
	MsgSubscriberIDFormat = "Please enter a valid Subscriber ID format. Ex: 123456789M"
	MsgSubscriberIDLength = "Subscriber ID must be 10 characters."
	MsgBirthDateInvalid   = "Please enter a valid date of birth."
	MsgBirthDateFormat    = "Please enter date in the format of MM/DD/YYYY."
)

// Validate returns the error message for value in field, or "" when it is valid.
// Identifier fields other than the one selected by ctx.IDType are exempt.
func Validate(field Field, value string, ctx Context) string {
	switch field {
	case FieldFirstName:
		return validateName("First", value)
	case FieldLastName:
		return validateName("Last", value)
	case FieldBirthDate:
		return validateBirthDate(value, ctx.now())
	case FieldZip:
		if blank(value) {
			return "Zip code is required."
		}
		if !zipPattern.MatchString(value) {
			return "Zip code must be 5 digits."
		}
		return ""
	case FieldSubscriberID:
		if ctx.IDType != IDTypeSubscriberID {
			return ""
		}
		return validateSubscriberID(value)
	case FieldSSN:
		if ctx.IDType != IDTypeSSN {
			return ""
		}
		if blank(value) {
			return "Please enter the last 4 digits of your SSN."
		}
		if !digitsPattern.MatchString(value) {
			return "The last 4 digits of your SSN can only contain numbers."
		}
		if len(value) != 4 {
			return "Please enter the last 4 digits of your SSN."
		}
		return ""
	case FieldCode:
		if ctx.IDType != IDTypeCode {
			return ""
		}
		if blank(value) {
			return "Unique Code is required."
		}
		if !digitsPattern.MatchString(value) {
			return "Unique Code can only contain numbers."
		}
		if len(value) != 7 {
			return "Unique Code must be 7 characters."
		}
		return ""
	case FieldUsername:
		if blank(value) {
			return "Username is required."
		}
		if len(value) < 8 {
			return "Username should be at least 8 characters."
		}
		if !alphanumericPattern.MatchString(value) {
			return "Username should only contains numbers and letters."
		}
		return ""
	case FieldEmail:
		if blank(value) {
			return "Email is required."
		}
		if !emailCharsetPattern.MatchString(value) {
			return "Email can only contain letters, numbers, symbol (@), dots (.), hyphens (-), and underscore (_)."
		}
		if !emailShapePattern.MatchString(value) {
			return "Please enter a valid email address."
		}
		return ""
	case FieldVerifiedEmail:
		if blank(value) {
			return "You must verify your email"
		}
		if value != ctx.Email {
			return "Your emails must match"
		}
		return ""
	case FieldMobilePhone:
		if blank(value) {
			return "Mobile phone number is required."
		}
		if len(Digits(value)) != 10 {
			return "Mobile phone number must be 10 characters."
		}
		return ""
	case FieldHomePhone:
		if value != "" && len(Digits(value)) != 10 {
			return "Home number must be 10 characters."
		}
		return ""
	case FieldAnswer1, FieldAnswer2, FieldAnswer3:
		if blank(value) {
			return "You must provide an answer."
		}
		return ""
	case FieldTerms:
		if !IsChecked(value) {
			return "Disclaimer must be accepted."
		}
		return ""
	case FieldCurrentPassword:
		if blank(value) {
			return "Current password is required."
		}
		return ""
	case FieldNewPassword:
		if blank(value) {
			return "New password is required."
		}
		return ""
	case FieldConfirmPassword:
		if blank(value) {
			return "Please confirm your new password."
		}
		if value != ctx.Password {
			return "Passwords do not match."
		}
		return ""
	default:
		return ""
	}
}

// IsChecked interprets an HTML checkbox value.
func IsChecked(value string) bool {
	switch strings.ToLower(value) {
	case "true", "on", "yes", "1":
		return true
	default:
		return false
	}
}

func (c Context) now() time.Time {
	if c.Now.IsZero() {
		return time.Now()
	}
	return c.Now
}

func blank(value string) bool {
	return strings.TrimSpace(value) == ""
}

func validateName(label, value string) string {
	if blank(value) {
		return label + " name is required."
	}
	if !namePattern.MatchString(strings.TrimSpace(value)) {
		return label + " name can only contain letters, spaces, dashes, and apostrophes."
	}
	return ""
}

func validateBirthDate(value string, now time.Time) string {
	if blank(value) {
		return "Date of birth is required."
	}
	if len(value) < 10 {
		return MsgBirthDateFormat
	}
	if !birthDatePattern.MatchString(value) {
		return MsgBirthDateInvalid
	}
	year, err := strconv.Atoi(value[6:10])
	if err != nil || year > now.Year() {
		return MsgBirthDateInvalid
	}
	return ""
}

// validateSubscriberID accepts #########M and R#########. A value with the right
// prefix or suffix but the wrong digit count fails on length, anything else on format.
func validateSubscriberID(value string) string {
	if blank(value) {
		return "Subscriber ID is required."
	}
	if !alphanumericPattern.MatchString(value) {
		return "Subscriber ID can only contain letters and numbers."
	}
	if strings.HasPrefix(strings.ToUpper(value), "R") {
		if subscriberRShape.MatchString(value) && len(value) != 10 {
			return MsgSubscriberIDLength
		}
		if !subscriberRPattern.MatchString(value) {
			return MsgSubscriberIDFormat
		}
		return ""
	}
	if subscriberMShape.MatchString(value) && len(value) != 10 {
		return MsgSubscriberIDLength
	}
	if !subscriberMPattern.MatchString(value) {
		return MsgSubscriberIDFormat
	}
	return ""
}
