package wizard

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/nfrund/enroll/internal/domain"
	"github.com/nfrund/enroll/internal/events"
	"github.com/nfrund/enroll/internal/validation"
)

// Coordinator owns one wizard: its state, its step controllers and the identity record
// and session tokens shared between steps. It is safe for concurrent use; the lock is
// never held across an account API call.
type Coordinator struct {
	id   string
	api  domain.AccountAPI
	sink events.Sink
	now  func() time.Time

	mu       sync.Mutex
	state    State
	identity *IdentityStep
	account  *AccountStep
	sharing  *SharingStep
	record   domain.IdentityRecord
	tokens   domain.SessionTokens
	history  []Step
	// generation is bumped by Reset and Expire. A response captured under an older
	// generation is discarded.
	generation uint64
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithClock overrides the clock used for date validation.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// WithSink sends wizard events to sink.
func WithSink(sink events.Sink) Option {
	return func(c *Coordinator) { c.sink = sink }
}

// New creates a coordinator positioned on the identity step.
func New(id string, api domain.AccountAPI, opts ...Option) *Coordinator {
	c := &Coordinator{id: id, api: api, sink: events.Discard, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.reset()
	return c
}

// ID returns the wizard ID.
func (c *Coordinator) ID() string { return c.id }

func (c *Coordinator) reset() {
	c.state = State{}
	c.identity = newIdentityStep()
	c.account = newAccountStep()
	c.sharing = newSharingStep()
	c.record = domain.IdentityRecord{}
	c.tokens = domain.SessionTokens{}
	c.history = []Step{StepIdentity}
	c.generation++
}

// Reset discards all progress and returns to the identity step. Calls still in
// flight will have their responses discarded.
func (c *Coordinator) Reset(ctx context.Context) {
	c.mu.Lock()
	c.reset()
	c.mu.Unlock()
	c.emit(ctx, events.KindReset, "", "")
}

// Expire invalidates in-flight calls before the wizard is dropped. A finished wizard
// already reported completion and emits nothing.
func (c *Coordinator) Expire(ctx context.Context) {
	c.mu.Lock()
	c.generation++
	c.tokens = domain.SessionTokens{}
	done := c.state.Terminal()
	c.mu.Unlock()
	if !done {
		c.emit(ctx, events.KindExpired, "", "")
	}
}

// Snapshot is a consistent, detached copy of the wizard for rendering.
type Snapshot struct {
	ID       string
	State    State
	Current  Step
	Crumbs   []Crumb
	Identity IdentityStep
	Account  AccountStep
	Sharing  SharingStep
	// Record is the verified identity without its tokens.
	Record  domain.IdentityRecord
	History []Step
}

// Snapshot copies the current state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	record := c.record
	record.Tokens = domain.SessionTokens{}
	return Snapshot{
		ID:       c.id,
		State:    c.state,
		Current:  c.state.Current(),
		Crumbs:   c.state.Crumbs(),
		Identity: c.identity.clone(),
		Account:  c.account.clone(),
		Sharing:  c.sharing.clone(),
		Record:   record,
		History:  slices.Clone(c.history),
	}
}

// Current returns the active step.
func (c *Coordinator) Current() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Current()
}

// State returns the coordinator's position.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Identity returns the verified identity record.
func (c *Coordinator) Identity() domain.IdentityRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record
}

// Tokens returns the session tokens authorizing the next protected call.
func (c *Coordinator) Tokens() domain.SessionTokens {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tokens
}

// History lists the steps that became current, in order.
func (c *Coordinator) History() []Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.history)
}

// Input records a change (blur=false) or blur (blur=true) of one field on the active step.
func (c *Coordinator) Input(field validation.Field, value string, blur bool) (FieldResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var step formStep
	switch c.state.Current() {
	case StepIdentity:
		step = c.identity
	case StepAccount:
		step = c.account
	case StepComplete:
		return FieldResult{}, ErrComplete
	default:
		return FieldResult{}, fmt.Errorf("%w: field %q", ErrStepNotActive, field)
	}

	result, ok := applyInput(step, field, value, c.now(), blur)
	if !ok {
		return FieldResult{}, fmt.Errorf("%w: field %q", ErrStepNotActive, field)
	}
	return result, nil
}

// SetIDType switches the identifier used for verification.
func (c *Coordinator) SetIDType(t validation.IDType) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkActive(StepIdentity); err != nil {
		return err
	}
	c.identity.setIDType(validation.ParseIDType(string(t)))
	return nil
}

// SetPassword updates both password inputs and returns the meter.
func (c *Coordinator) SetPassword(pw, confirm string) (PasswordMeter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkActive(StepAccount); err != nil {
		return PasswordMeter{}, err
	}
	return c.account.setPassword(pw, confirm), nil
}

// ChooseSharing toggles the allow (allow=true) or deny checkbox.
func (c *Coordinator) ChooseSharing(allow, checked bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkActive(StepSharing); err != nil {
		return err
	}
	c.sharing.choose(allow, checked)
	return nil
}

// SubmitIdentity validates the identity form and verifies it with the account API.
// On success the wizard moves to account setup and the security questions are loaded.
func (c *Coordinator) SubmitIdentity(ctx context.Context, form IdentityForm) error {
	c.mu.Lock()
	if err := c.checkActive(StepIdentity); err != nil {
		c.mu.Unlock()
		return err
	}
	st := c.identity
	if st.Status == StatusSubmitting {
		c.mu.Unlock()
		return ErrSubmissionInFlight
	}
	st.Status = StatusValidating
	st.Message = ""
	st.load(form)
	if !validateAll(st, identityFields, c.now()) {
		st.Status = StatusError
		c.mu.Unlock()
		return ErrValidation
	}
	st.Status = StatusSubmitting
	req := st.request()
	gen := c.generation
	c.mu.Unlock()

	rec, err := c.api.VerifyIdentity(ctx, req)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return ErrStaleResponse
	}
	if err != nil {
		st.Status = StatusError
		st.Message = Message(domain.OpVerifyIdentity, err)
		c.mu.Unlock()
		c.emit(ctx, events.KindStepFailed, StepIdentity.String(), domain.CodeOf(err).String())
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}

	c.record = rec
	c.tokens = rec.Tokens
	c.state.decideBranch(rec.ShowAccountSharing)
	st.Status = StatusSuccess
	c.advance()
	if c.account.Form.Username == "" {
		c.account.Form.Username = rec.Username
	}
	c.mu.Unlock()

	c.emit(ctx, events.KindStepCompleted, StepIdentity.String(), "")
	// A failed load is reported on the account step itself.
	_ = c.LoadQuestions(ctx)
	return nil
}

// LoadQuestions fetches the security question lists for the account step once.
func (c *Coordinator) LoadQuestions(ctx context.Context) error {
	c.mu.Lock()
	if err := c.checkActive(StepAccount); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.account.QuestionsLoaded {
		c.mu.Unlock()
		return nil
	}
	tokens := c.tokens
	gen := c.generation
	c.mu.Unlock()

	set, err := c.api.SecurityQuestions(ctx, tokens)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation || c.state.Current() != StepAccount {
		return ErrStaleResponse
	}
	if err != nil {
		c.account.Status = StatusError
		c.account.Message = Message(domain.OpSecurityQuestions, err)
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}
	c.account.Questions = set
	c.account.QuestionsLoaded = true
	if c.account.Status == StatusError {
		c.account.Status = StatusIdle
		c.account.Message = ""
	}
	return nil
}

// SubmitAccount validates the account form, checks username availability unless the
// member already has one, and creates the account.
func (c *Coordinator) SubmitAccount(ctx context.Context, form AccountForm) error {
	c.mu.Lock()
	if err := c.checkActive(StepAccount); err != nil {
		c.mu.Unlock()
		return err
	}
	st := c.account
	if st.Status == StatusSubmitting {
		c.mu.Unlock()
		return ErrSubmissionInFlight
	}
	st.Status = StatusValidating
	st.Message = ""
	st.load(form)
	if !st.validate(c.now()) {
		st.Status = StatusError
		c.mu.Unlock()
		return ErrValidation
	}
	st.Status = StatusSubmitting
	req := st.request(c.record.Username)
	tokens := c.tokens
	precheck := !c.record.UserExists
	gen := c.generation
	c.mu.Unlock()

	if precheck {
		err := c.api.CheckUsername(ctx, req.Username, tokens)
		if err != nil {
			return c.failAccount(ctx, gen, domain.OpCheckUsername, err)
		}
		c.mu.Lock()
		stale := gen != c.generation
		c.mu.Unlock()
		if stale {
			return ErrStaleResponse
		}
	}

	newTokens, err := c.api.SetupAccount(ctx, req, tokens)
	if err != nil {
		return c.failAccount(ctx, gen, domain.OpSetupAccount, err)
	}

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return ErrStaleResponse
	}
	c.tokens = newTokens
	st.Status = StatusSuccess
	next := c.advance()
	c.mu.Unlock()

	c.emit(ctx, events.KindStepCompleted, StepAccount.String(), "")
	if next == StepComplete {
		c.emit(ctx, events.KindCompleted, "", "")
	}
	return nil
}

func (c *Coordinator) failAccount(ctx context.Context, gen uint64, op domain.Operation, err error) error {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return ErrStaleResponse
	}
	st := c.account
	st.Status = StatusError
	st.Message = Message(op, err)
	if domain.CodeOf(err) == domain.CodeUsernameTaken {
		st.UsernameConflict = true
		st.Errors.Set(validation.FieldUsername, MsgUsernameFieldConflict)
	}
	c.mu.Unlock()

	c.emit(ctx, events.KindStepFailed, StepAccount.String(), domain.CodeOf(err).String())
	return fmt.Errorf("%w: %w", ErrRejected, err)
}

// SubmitSharing records the account-sharing preference and completes the wizard.
func (c *Coordinator) SubmitSharing(ctx context.Context, form SharingForm) error {
	c.mu.Lock()
	if err := c.checkActive(StepSharing); err != nil {
		c.mu.Unlock()
		return err
	}
	st := c.sharing
	if st.Status == StatusSubmitting {
		c.mu.Unlock()
		return ErrSubmissionInFlight
	}
	st.Status = StatusValidating
	st.Message = ""
	st.load(form)
	if !st.validate() {
		st.Status = StatusError
		c.mu.Unlock()
		return ErrValidation
	}
	st.Status = StatusSubmitting
	req := domain.ShareRequest{ShareAccount: st.Form.Allow}
	tokens := c.tokens
	gen := c.generation
	c.mu.Unlock()

	err := c.api.ShareAccount(ctx, req, tokens)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return ErrStaleResponse
	}
	if err != nil {
		st.Status = StatusError
		st.Message = Message(domain.OpShareAccount, err)
		c.mu.Unlock()
		c.emit(ctx, events.KindStepFailed, StepSharing.String(), domain.CodeOf(err).String())
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}
	st.Status = StatusSuccess
	c.advance()
	c.mu.Unlock()

	c.emit(ctx, events.KindStepCompleted, StepSharing.String(), "")
	c.emit(ctx, events.KindCompleted, "", "")
	return nil
}

// checkActive must be called with mu held.
func (c *Coordinator) checkActive(step Step) error {
	current := c.state.Current()
	if current == StepComplete {
		return ErrComplete
	}
	if current != step {
		return fmt.Errorf("%w: %s is active, not %s", ErrStepNotActive, current, step)
	}
	return nil
}

// advance must be called with mu held. Tokens are dropped once the wizard finishes.
func (c *Coordinator) advance() Step {
	next := c.state.advance()
	if next == StepComplete {
		c.tokens = domain.SessionTokens{}
		c.record.Tokens = domain.SessionTokens{}
		return next
	}
	c.history = append(c.history, next)
	return next
}

func (c *Coordinator) emit(ctx context.Context, kind events.Kind, step, code string) {
	c.sink.Emit(ctx, c.id, events.RegistrationEvent{Kind: kind, Step: step, Code: code, At: time.Now()})
}
