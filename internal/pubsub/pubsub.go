// Package pubsub is the in-process event bus. Publishers and subscribers exchange
// JSON payloads on named topics; typed.go binds a topic to its payload type.
package pubsub

import "context"

// Message is one event on the bus.
type Message struct {
	Topic string
	// WizardID is the registration wizard the event concerns.
	WizardID string
	// Payload is the JSON-encoded event body.
	Payload  []byte
	Metadata map[string]string
}

// Handler processes one delivered message.
type Handler func(ctx context.Context, msg Message) error

// Publisher sends messages to the bus.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber receives messages from the bus. Subscribe returns once the subscription
// is active and delivers messages in the background.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}
