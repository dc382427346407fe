package domain

import "context"

// AccountAPI is the external account provisioning service the wizard drives.
type AccountAPI interface {
	VerifyIdentity(ctx context.Context, req VerifyRequest) (IdentityRecord, error)
	CheckUsername(ctx context.Context, username string, tokens SessionTokens) error
	SecurityQuestions(ctx context.Context, tokens SessionTokens) (SecurityQuestionSet, error)
	SetupAccount(ctx context.Context, req AccountSetupRequest, tokens SessionTokens) (SessionTokens, error)
	ShareAccount(ctx context.Context, req ShareRequest, tokens SessionTokens) error
	ChangePassword(ctx context.Context, token string, req ChangePasswordRequest) error
}
