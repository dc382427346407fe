package pubsub

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// DefaultBuffer is the per-subscriber output buffer of the in-memory bus.
const DefaultBuffer = 64

// Reserved watermill metadata keys for the Message envelope fields.
const (
	metaTopic    = "topic"
	metaWizardID = "wizard_id"
)

// WatermillBridge is the in-memory bus: a watermill GoChannel behind the Publisher and
// Subscriber interfaces.
type WatermillBridge struct {
	channel *gochannel.GoChannel
}

var (
	_ Publisher  = (*WatermillBridge)(nil)
	_ Subscriber = (*WatermillBridge)(nil)
)

// NewWatermillBridge creates a bus with the default buffer.
func NewWatermillBridge() *WatermillBridge {
	return NewWatermillBridgeWithBuffer(DefaultBuffer)
}

// NewWatermillBridgeWithBuffer creates a bus whose subscribers buffer up to size messages.
func NewWatermillBridgeWithBuffer(size int64) *WatermillBridge {
	if size <= 0 {
		size = DefaultBuffer
	}
	return &WatermillBridge{
		channel: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: size},
			watermill.NewStdLogger(false, false),
		),
	}
}

// Publish implements Publisher.
func (b *WatermillBridge) Publish(ctx context.Context, msg Message) error {
	wm := message.NewMessage(watermill.NewUUID(), msg.Payload)
	for k, v := range msg.Metadata {
		wm.Metadata.Set(k, v)
	}
	wm.Metadata.Set(metaTopic, msg.Topic)
	wm.Metadata.Set(metaWizardID, msg.WizardID)
	wm.SetContext(ctx)
	return b.channel.Publish(msg.Topic, wm)
}

// Subscribe implements Subscriber. The handler runs on one goroutine per subscription
// until ctx is canceled or the bus is closed.
func (b *WatermillBridge) Subscribe(ctx context.Context, topic string, handler Handler) error {
	messages, err := b.channel.Subscribe(ctx, topic)
	if err != nil {
		return err
	}
	go b.deliver(ctx, topic, messages, handler)
	return nil
}

func (b *WatermillBridge) deliver(ctx context.Context, topic string, messages <-chan *message.Message, handler Handler) {
	defer slog.Debug("Subscription ended", "topic", topic)
	for {
		select {
		case <-ctx.Done():
			return
		case wm, ok := <-messages:
			if !ok {
				return
			}
			if err := handler(ctx, fromWatermill(wm)); err != nil {
				// GoChannel resends nacked messages, so a failed message is logged and acked.
				slog.Error("Failed to handle message", "topic", topic, "msg_id", wm.UUID, "error", err)
			}
			wm.Ack()
		}
	}
}

func fromWatermill(wm *message.Message) Message {
	msg := Message{
		Topic:    wm.Metadata.Get(metaTopic),
		WizardID: wm.Metadata.Get(metaWizardID),
		Payload:  wm.Payload,
		Metadata: map[string]string{},
	}
	for k, v := range wm.Metadata {
		if k != metaTopic && k != metaWizardID {
			msg.Metadata[k] = v
		}
	}
	return msg
}

// Close shuts the bus down and ends every subscription.
func (b *WatermillBridge) Close() error {
	return b.channel.Close()
}
