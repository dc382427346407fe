package wizard

import (
	"github.com/nfrund/enroll/internal/domain"
)

// MsgGeneric is shown for every failure without a dedicated message.
const MsgGeneric = "An error has occurred. Please try again later."

const (
	MsgUsernameConflict      = "Please enter a unique username"
	MsgUsernameFieldConflict = "Please enter a unique username and press continue."
	MsgSelectQuestions       = "You must select all security questions."
	MsgPasswordRequired      = "Please create a password that meets all of the requirements."
	MsgSharingSelection      = "You must make a selection above."
	MsgPasswordChanged       = "Your password has been successfully changed."
)

var messages = map[domain.Operation]map[domain.ErrorCode]string{
	domain.OpVerifyIdentity: {
		domain.CodeNotFound:          "Could not find member with the information provided above.",
		domain.CodeAlreadyRegistered: "This user is already registered.",
		domain.CodeTerminated:        "This user's subscription has been terminated.",
		domain.CodeNotYetEffective:   "This user's subscription is not in effect yet.",
	},
	domain.OpCheckUsername: {
		domain.CodeUsernameTaken: MsgUsernameConflict,
	},
	domain.OpSetupAccount: {
		domain.CodeAccountExists:      "Cannot create user. User account already exists.",
		domain.CodeInvalidHomePhone:   "Invalid home phone number",
		domain.CodeInvalidEmail:       "Invalid Email",
		domain.CodeEmailInUse:         "The email address you entered is already in use. Please enter a unique email address and try again.",
		domain.CodeInvalidMobilePhone: "Invalid mobile phone number",
		domain.CodeMobilePhoneInUse:   "The mobile phone number you entered is already in use. Please enter a unique mobile phone number and try again.",
		domain.CodeNonUniqueAnswers:   "Security Answers should be unique",
		domain.CodeUsernameTaken:      MsgUsernameConflict,
	},
	domain.OpChangePassword: {
		domain.CodeInvalidCurrentPassword: "Invalid current password.",
		domain.CodeUnauthorized:           "You are not authorized to perform this action.",
	},
}

// Message returns the display string for a failed account API call.
func Message(op domain.Operation, err error) string {
	if msg, ok := messages[op][domain.CodeOf(err)]; ok {
		return msg
	}
	return MsgGeneric
}
