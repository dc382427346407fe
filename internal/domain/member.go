package domain

// SessionTokens are the short-lived credentials that authorize protected account API calls
// for the remainder of a wizard. They are held in memory only.
type SessionTokens struct {
	SessionToken string
	Nonce        string
}

// Empty reports whether no token has been issued yet.
func (t SessionTokens) Empty() bool {
	return t.SessionToken == "" || t.Nonce == ""
}

// IdentityRecord is the verified member identity returned by identity verification.
type IdentityRecord struct {
	FirstName             string
	LastName              string
	PolicyHolderFirstName string
	PolicyHolderLastName  string
	Username              string
	Email                 string
	// UserExists is set when the member already owns a username, in which case the
	// availability pre-check is skipped.
	UserExists bool
	// ShowAccountSharing decides whether the wizard includes the account-sharing step.
	ShowAccountSharing bool
	Tokens             SessionTokens
}

// SecurityQuestion is one selectable question.
type SecurityQuestion struct {
	Text string `json:"questionText"`
}

// SecurityQuestionSet holds the three independent option lists offered during account setup.
type SecurityQuestionSet [3][]SecurityQuestion

// SecurityAnswer pairs a selected question with the member's answer.
type SecurityAnswer struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// VerifyRequest carries the identity attributes sent for verification.
// Exactly one of SubscriberID, UniqueCode and SSN is populated.
type VerifyRequest struct {
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	SubscriberID string `json:"subscriberId"`
	ZipCode      string `json:"zipCode" validate:"required,len=5,numeric"`
	BirthDate    string `json:"birthDate" validate:"required,len=10"`
	UniqueCode   string `json:"uniqueCode"`
	SSN          string `json:"ssn"`
}

// AccountSetupRequest is the payload that creates the member's online account.
type AccountSetupRequest struct {
	CurrentUsername   string           `json:"currentUsername"`
	Username          string           `json:"username" validate:"required,alphanum,min=8"`
	Email             string           `json:"email" validate:"required"`
	MobilePhone       string           `json:"mobilePhone" validate:"required"`
	HomePhone         string           `json:"homePhone"`
	Password          string           `json:"password" validate:"required,min=8"`
	SecurityQuestions []SecurityAnswer `json:"securityQuestions" validate:"len=3,dive"`
}

// ShareRequest records the member's account-sharing preference.
type ShareRequest struct {
	ShareAccount bool `json:"shareAccount"`
}

// ChangePasswordRequest replaces the member's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}
