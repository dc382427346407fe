package wizard

import (
	"context"
	"sync"

	"github.com/nfrund/enroll/internal/domain"
	"github.com/nfrund/enroll/internal/events"
)

// fakeAPI is a scriptable domain.AccountAPI that records the calls it receives.
type fakeAPI struct {
	mu    sync.Mutex
	calls []domain.Operation

	verifyReq domain.VerifyRequest
	setupReq  domain.AccountSetupRequest
	shareReq  domain.ShareRequest
	tokensIn  map[domain.Operation]domain.SessionTokens

	verify    func(domain.VerifyRequest) (domain.IdentityRecord, error)
	username  func(string) error
	questions func() (domain.SecurityQuestionSet, error)
	setup     func(domain.AccountSetupRequest) (domain.SessionTokens, error)
	share     func(domain.ShareRequest) error
}

var _ domain.AccountAPI = (*fakeAPI)(nil)

func newFakeAPI(sharing bool) *fakeAPI {
	return &fakeAPI{
		tokensIn: map[domain.Operation]domain.SessionTokens{},
		verify: func(domain.VerifyRequest) (domain.IdentityRecord, error) {
			return verifiedRecord(sharing), nil
		},
	}
}

func verifiedRecord(sharing bool) domain.IdentityRecord {
	return domain.IdentityRecord{
		FirstName:             "JANE",
		LastName:              "DOE",
		PolicyHolderFirstName: "John",
		PolicyHolderLastName:  "Doe",
		ShowAccountSharing:    sharing,
		Tokens:                domain.SessionTokens{SessionToken: "t1", Nonce: "n1"},
	}
}

func (f *fakeAPI) record(op domain.Operation, tokens domain.SessionTokens) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
	f.tokensIn[op] = tokens
}

func (f *fakeAPI) Calls() []domain.Operation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Operation(nil), f.calls...)
}

func (f *fakeAPI) TokensFor(op domain.Operation) domain.SessionTokens {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tokensIn[op]
}

func (f *fakeAPI) VerifyIdentity(ctx context.Context, req domain.VerifyRequest) (domain.IdentityRecord, error) {
	f.record(domain.OpVerifyIdentity, domain.SessionTokens{})
	f.mu.Lock()
	f.verifyReq = req
	f.mu.Unlock()
	return f.verify(req)
}

func (f *fakeAPI) CheckUsername(ctx context.Context, username string, tokens domain.SessionTokens) error {
	f.record(domain.OpCheckUsername, tokens)
	if f.username != nil {
		return f.username(username)
	}
	return nil
}

func (f *fakeAPI) SecurityQuestions(ctx context.Context, tokens domain.SessionTokens) (domain.SecurityQuestionSet, error) {
	f.record(domain.OpSecurityQuestions, tokens)
	if f.questions != nil {
		return f.questions()
	}
	return domain.SecurityQuestionSet{
		{{Text: "q1"}, {Text: "q1b"}},
		{{Text: "q2"}},
		{{Text: "q3"}},
	}, nil
}

func (f *fakeAPI) SetupAccount(ctx context.Context, req domain.AccountSetupRequest, tokens domain.SessionTokens) (domain.SessionTokens, error) {
	f.record(domain.OpSetupAccount, tokens)
	f.mu.Lock()
	f.setupReq = req
	f.mu.Unlock()
	if f.setup != nil {
		return f.setup(req)
	}
	return domain.SessionTokens{SessionToken: "t2", Nonce: "n2"}, nil
}

func (f *fakeAPI) ShareAccount(ctx context.Context, req domain.ShareRequest, tokens domain.SessionTokens) error {
	f.record(domain.OpShareAccount, tokens)
	f.mu.Lock()
	f.shareReq = req
	f.mu.Unlock()
	if f.share != nil {
		return f.share(req)
	}
	return nil
}

func (f *fakeAPI) ChangePassword(ctx context.Context, token string, req domain.ChangePasswordRequest) error {
	f.record(domain.OpChangePassword, domain.SessionTokens{SessionToken: token})
	return nil
}

// recordingSink collects emitted events.
type recordingSink struct {
	mu     sync.Mutex
	events []events.RegistrationEvent
}

func (s *recordingSink) Emit(ctx context.Context, wizardID string, ev events.RegistrationEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) Kinds() []events.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	kinds := make([]events.Kind, len(s.events))
	for i, ev := range s.events {
		kinds[i] = ev.Kind
	}
	return kinds
}
