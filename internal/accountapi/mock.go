package accountapi

import (
	"context"
	"log/slog"

	"github.com/nfrund/enroll/internal/domain"
)

// MockClient answers every call locally with canned development responses.
type MockClient struct {
	// ShowAccountSharing is returned by VerifyIdentity and decides the wizard branch.
	ShowAccountSharing bool
}

var _ domain.AccountAPI = (*MockClient)(nil)

// VerifyIdentity echoes the submitted name back with development tokens.
func (m *MockClient) VerifyIdentity(ctx context.Context, req domain.VerifyRequest) (domain.IdentityRecord, error) {
	slog.DebugContext(ctx, "mock account API: verify identity", "show_account_sharing", m.ShowAccountSharing)
	return domain.IdentityRecord{
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		PolicyHolderFirstName: "John",
		PolicyHolderLastName:  "Doe",
		Username:              "mockuser",
		Email:                 "mock@example.com",
		ShowAccountSharing:    m.ShowAccountSharing,
		Tokens:                domain.SessionTokens{SessionToken: "mock-token-123", Nonce: "mock-nonce-456"},
	}, nil
}

// CheckUsername always reports the username as available.
func (m *MockClient) CheckUsername(ctx context.Context, username string, tokens domain.SessionTokens) error {
	return nil
}

// SecurityQuestions returns three fixed option lists.
func (m *MockClient) SecurityQuestions(ctx context.Context, tokens domain.SessionTokens) (domain.SecurityQuestionSet, error) {
	return domain.SecurityQuestionSet{
		{
			{Text: "What was the name of your first pet?"},
			{Text: "What is your mother's maiden name?"},
			{Text: "What was the make of your first car?"},
		},
		{
			{Text: "What city were you born in?"},
			{Text: "What is your favorite color?"},
			{Text: "What was your childhood nickname?"},
		},
		{
			{Text: "What was the name of your elementary school?"},
			{Text: "What street did you grow up on?"},
			{Text: "What is your favorite movie?"},
		},
	}, nil
}

// SetupAccount issues a second pair of development tokens.
func (m *MockClient) SetupAccount(ctx context.Context, req domain.AccountSetupRequest, tokens domain.SessionTokens) (domain.SessionTokens, error) {
	return domain.SessionTokens{SessionToken: "new-token-789", Nonce: "new-nonce-012"}, nil
}

// ShareAccount accepts any preference.
func (m *MockClient) ShareAccount(ctx context.Context, req domain.ShareRequest, tokens domain.SessionTokens) error {
	return nil
}

// ChangePassword rejects an empty token like the real API would.
func (m *MockClient) ChangePassword(ctx context.Context, token string, req domain.ChangePasswordRequest) error {
	if token == "" {
		return &domain.APIError{Op: domain.OpChangePassword, HTTPStatus: 401, Code: domain.CodeUnauthorized}
	}
	return nil
}
