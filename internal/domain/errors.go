package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a failed account API call. The API client derives it from the
// HTTP status or the server message; display strings are chosen from it by the wizard.
type ErrorCode int

const (
	CodeUnknown ErrorCode = iota
	CodeTransport
	CodeServerError
	CodeUnauthorized
	CodeNotFound
	CodeAlreadyRegistered
	CodeTerminated
	CodeNotYetEffective
	CodeUsernameTaken
	CodeAccountExists
	CodeInvalidEmail
	CodeEmailInUse
	CodeInvalidHomePhone
	CodeInvalidMobilePhone
	CodeMobilePhoneInUse
	CodeNonUniqueAnswers
	CodeInvalidCurrentPassword
)

var codeNames = map[ErrorCode]string{
	CodeUnknown:                "unknown",
	CodeTransport:              "transport",
	CodeServerError:            "server_error",
	CodeUnauthorized:           "unauthorized",
	CodeNotFound:               "not_found",
	CodeAlreadyRegistered:      "already_registered",
	CodeTerminated:             "terminated",
	CodeNotYetEffective:        "not_yet_effective",
	CodeUsernameTaken:          "username_taken",
	CodeAccountExists:          "account_exists",
	CodeInvalidEmail:           "invalid_email",
	CodeEmailInUse:             "email_in_use",
	CodeInvalidHomePhone:       "invalid_home_phone",
	CodeInvalidMobilePhone:     "invalid_mobile_phone",
	CodeMobilePhoneInUse:       "mobile_phone_in_use",
	CodeNonUniqueAnswers:       "non_unique_answers",
	CodeInvalidCurrentPassword: "invalid_current_password",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Operation names an account API call.
type Operation string

const (
	OpVerifyIdentity    Operation = "verify_identity"
	OpCheckUsername     Operation = "check_username"
	OpSecurityQuestions Operation = "security_questions"
	OpSetupAccount      Operation = "setup_account"
	OpShareAccount      Operation = "share_account"
	OpChangePassword    Operation = "change_password"
)

// APIError is returned by every AccountAPI implementation when a call does not succeed.
type APIError struct {
	Op         Operation
	HTTPStatus int
	Code       ErrorCode
	// Message is the raw server message, kept for diagnostics only.
	Message string
	Err     error
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Code)
	if e.HTTPStatus != 0 {
		msg += fmt.Sprintf(" (status %d)", e.HTTPStatus)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *APIError) Unwrap() error { return e.Err }

// CodeOf extracts the ErrorCode from err, returning CodeUnknown for foreign errors.
func CodeOf(err error) ErrorCode {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return CodeUnknown
}
