package events

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/nfrund/enroll/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer guards a bytes.Buffer written by the subscriber goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestBusSink_AuditLog(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := pubsub.NewWatermillBridge()
	defer bus.Close()

	var out syncBuffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	require.NoError(t, SubscribeAudit(ctx, bus, logger))

	sink := NewBusSink(bus)
	sink.Emit(ctx, "wiz-1", RegistrationEvent{Kind: KindStepCompleted, Step: "identity"})
	sink.Emit(ctx, "wiz-1", RegistrationEvent{Kind: KindStepFailed, Step: "account", Code: "email_in_use"})

	require.Eventually(t, func() bool {
		s := out.String()
		return bytes.Count([]byte(s), []byte("registration event")) == 2
	}, 2*time.Second, 10*time.Millisecond)

	logged := out.String()
	assert.Contains(t, logged, "wizard_id=wiz-1")
	assert.Contains(t, logged, "step=identity")
	assert.Contains(t, logged, "level=WARN")
	assert.Contains(t, logged, "code=email_in_use")
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, pubsub.Message) error { return assert.AnError }
func (failingPublisher) Close() error                                   { return nil }

func TestBusSink_PublishFailureIsSwallowed(t *testing.T) {
	assert.NotPanics(t, func() {
		NewBusSink(failingPublisher{}).Emit(context.Background(), "wiz-1", RegistrationEvent{Kind: KindStarted})
	})
	assert.NotPanics(t, func() {
		Discard.Emit(context.Background(), "wiz-1", RegistrationEvent{Kind: KindStarted})
	})
}
