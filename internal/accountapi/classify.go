package accountapi

import (
	"net/http"

	"github.com/nfrund/enroll/internal/domain"
)

// knownMessages are the server messages the API uses for business-rule rejections.
// Matching the literal text happens here and nowhere else.
var knownMessages = map[string]domain.ErrorCode{
	"Cannot create user. User account already exists for SubID and MemberNumber": domain.CodeAccountExists,
	"Invalid HomePhoneNumber":           domain.CodeInvalidHomePhone,
	"Invalid Email":                     domain.CodeInvalidEmail,
	"Email already Exists":              domain.CodeEmailInUse,
	"Invalid CellPhoneNumber":           domain.CodeInvalidMobilePhone,
	"CellPhoneNumber already Exists":    domain.CodeMobilePhoneInUse,
	"Security Answers should be unique": domain.CodeNonUniqueAnswers,
	"Username already Exists":           domain.CodeUsernameTaken,
}

func classifyMessage(msg string) domain.ErrorCode {
	if code, ok := knownMessages[msg]; ok {
		return code
	}
	return domain.CodeUnknown
}

// classifyStatus maps a non-2xx response to an ErrorCode. The meaning of a status
// depends on the operation.
func classifyStatus(op domain.Operation, status int, msg string) domain.ErrorCode {
	switch op {
	case domain.OpVerifyIdentity:
		switch status {
		case http.StatusBadRequest, http.StatusNotAcceptable:
			return domain.CodeNotFound
		case http.StatusConflict:
			return domain.CodeAlreadyRegistered
		case http.StatusGone:
			return domain.CodeTerminated
		case http.StatusPreconditionFailed:
			return domain.CodeNotYetEffective
		}
	case domain.OpCheckUsername:
		if status == http.StatusConflict {
			return domain.CodeUsernameTaken
		}
	case domain.OpSetupAccount:
		if status == http.StatusBadRequest {
			return classifyMessage(msg)
		}
		if status == http.StatusConflict {
			return domain.CodeUsernameTaken
		}
	case domain.OpChangePassword:
		if status == http.StatusBadRequest {
			return domain.CodeInvalidCurrentPassword
		}
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.CodeUnauthorized
	case status >= 500:
		return domain.CodeServerError
	default:
		return domain.CodeUnknown
	}
}
