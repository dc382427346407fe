// Package events publishes registration wizard milestones on the in-memory bus and
// provides the audit-log subscriber that consumes them.
package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/nfrund/enroll/internal/pubsub"
)

// Kind names a wizard milestone.
type Kind string

const (
	KindStarted       Kind = "started"
	KindStepCompleted Kind = "step_completed"
	KindStepFailed    Kind = "step_failed"
	KindCompleted     Kind = "completed"
	KindReset         Kind = "reset"
	KindExpired       Kind = "expired"
)

// RegistrationEvent is the payload of every message on the registration topic.
// It never carries member data.
type RegistrationEvent struct {
	Kind Kind      `json:"kind"`
	Step string    `json:"step,omitempty"`
	Code string    `json:"code,omitempty"`
	At   time.Time `json:"at"`
}

// Registration is the topic all wizard events are published on.
var Registration = pubsub.NewEvent[RegistrationEvent]("registration.events")

// Sink receives wizard events.
type Sink interface {
	Emit(ctx context.Context, wizardID string, ev RegistrationEvent)
}

// Discard drops every event.
var Discard Sink = discard{}

type discard struct{}

func (discard) Emit(context.Context, string, RegistrationEvent) {}

// BusSink publishes events to a pubsub.Publisher. Publish failures are logged, not returned.
type BusSink struct {
	pub pubsub.Publisher
}

// NewBusSink creates a sink on pub.
func NewBusSink(pub pubsub.Publisher) *BusSink {
	return &BusSink{pub: pub}
}

// Emit implements Sink.
func (s *BusSink) Emit(ctx context.Context, wizardID string, ev RegistrationEvent) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	if err := pubsub.Publish(ctx, s.pub, Registration, wizardID, ev); err != nil {
		slog.WarnContext(ctx, "Failed to publish registration event", "wizard_id", wizardID, "kind", ev.Kind, "error", err)
	}
}
