package wizard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nfrund/enroll/internal/domain"
	"github.com/nfrund/enroll/internal/events"
)

const (
	// DefaultTTL is how long an untouched wizard is kept.
	DefaultTTL = 30 * time.Minute
	// DefaultSweepInterval is how often expired wizards are removed.
	DefaultSweepInterval = time.Minute
)

type entry struct {
	wizard   *Coordinator
	lastSeen time.Time
}

// Store keeps the live wizards in memory, keyed by wizard ID.
type Store struct {
	api    domain.AccountAPI
	sink   events.Sink
	opts   []Option
	logger *slog.Logger
	now    func() time.Time
	ttl    time.Duration

	mu      sync.Mutex
	wizards map[string]*entry

	sweepInterval time.Duration
	stopSweep     chan struct{}
	stopOnce      sync.Once
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTTL sets how long an idle wizard survives.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithSweepInterval sets how often expired wizards are removed.
func WithSweepInterval(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.sweepInterval = d
		}
	}
}

// WithStoreClock overrides the clock used for expiry.
func WithStoreClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithEventSink publishes wizard events to sink.
func WithEventSink(sink events.Sink) StoreOption {
	return func(s *Store) { s.sink = sink }
}

// WithWizardOptions passes opts to every coordinator the store creates.
func WithWizardOptions(opts ...Option) StoreOption {
	return func(s *Store) { s.opts = append(s.opts, opts...) }
}

// NewStore creates an empty store whose wizards call api.
func NewStore(api domain.AccountAPI, opts ...StoreOption) *Store {
	s := &Store{
		api:           api,
		sink:          events.Discard,
		logger:        slog.Default().With("service", "wizard-store"),
		now:           time.Now,
		ttl:           DefaultTTL,
		wizards:       make(map[string]*entry),
		sweepInterval: DefaultSweepInterval,
		stopSweep:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a new wizard under a fresh random ID.
func (s *Store) Create(ctx context.Context) *Coordinator {
	id := uuid.NewString()
	opts := append([]Option{WithSink(s.sink)}, s.opts...)
	c := New(id, s.api, opts...)

	s.mu.Lock()
	s.wizards[id] = &entry{wizard: c, lastSeen: s.now()}
	s.mu.Unlock()

	c.emit(ctx, events.KindStarted, "", "")
	return c
}

// Get returns the wizard for id and marks it as used. Expired wizards are not returned.
func (s *Store) Get(id string) (*Coordinator, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.wizards[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.Sub(e.lastSeen) > s.ttl {
		return nil, false
	}
	e.lastSeen = now
	return e.wizard, true
}

// Delete drops the wizard for id, discarding any response still in flight.
func (s *Store) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	e, ok := s.wizards[id]
	delete(s.wizards, id)
	s.mu.Unlock()

	if ok {
		e.wizard.Expire(ctx)
	}
}

// Len returns the number of wizards held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.wizards)
}

// Sweep removes every wizard idle for longer than the TTL and returns how many it removed.
func (s *Store) Sweep(ctx context.Context) int {
	threshold := s.now().Add(-s.ttl)

	s.mu.Lock()
	var expired []*Coordinator
	for id, e := range s.wizards {
		if e.lastSeen.Before(threshold) {
			expired = append(expired, e.wizard)
			delete(s.wizards, id)
		}
	}
	s.mu.Unlock()

	for _, c := range expired {
		c.Expire(ctx)
	}
	if len(expired) > 0 {
		s.logger.Debug("Swept expired wizards", "count", len(expired))
	}
	return len(expired)
}

// Run sweeps on a ticker until ctx is canceled or Shutdown is called.
func (s *Store) Run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(ctx)
		case <-ctx.Done():
			return
		case <-s.stopSweep:
			return
		}
	}
}

// Shutdown stops Run.
func (s *Store) Shutdown() {
	s.stopOnce.Do(func() { close(s.stopSweep) })
}
