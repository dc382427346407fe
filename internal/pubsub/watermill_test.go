package pubsub

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatermillBridge_RoundTrip(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bridge := NewWatermillBridge()
	defer bridge.Close()

	received := make(chan Message, 1)
	err := bridge.Subscribe(ctx, "test.topic", func(ctx context.Context, msg Message) error {
		received <- msg
		return nil
	})
	require.NoError(t, err)

	err = bridge.Publish(ctx, Message{
		Topic:    "test.topic",
		WizardID: "wiz-1",
		Payload:  []byte(`{"ok":true}`),
		Metadata: map[string]string{"request_id": "req-123"},
	})
	require.NoError(t, err)

	select {
	case msg := <-received:
		assert.Equal(t, "test.topic", msg.Topic)
		assert.Equal(t, "wiz-1", msg.WizardID)
		assert.JSONEq(t, `{"ok":true}`, string(msg.Payload))
		assert.Equal(t, "req-123", msg.Metadata["request_id"])
		assert.NotContains(t, msg.Metadata, metaTopic)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

type testPayload struct {
	Step string `json:"step"`
}

func TestTypedEvent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bridge := NewWatermillBridge()
	defer bridge.Close()

	event := NewEvent[testPayload]("typed.topic")
	assert.Equal(t, "typed.topic", event.Name())

	type got struct {
		id      string
		payload testPayload
	}
	received := make(chan got, 1)
	require.NoError(t, Subscribe(ctx, bridge, event, func(ctx context.Context, wizardID string, p testPayload) error {
		received <- got{wizardID, p}
		return nil
	}))

	require.NoError(t, Publish(ctx, bridge, event, "wiz-2", testPayload{Step: "account"}))

	select {
	case g := <-received:
		assert.Equal(t, "wiz-2", g.id)
		assert.Equal(t, "account", g.payload.Step)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for typed event")
	}
}

func TestWatermillBridge_FailedMessageIsNotRedelivered(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bridge := NewWatermillBridgeWithBuffer(4)
	defer bridge.Close()

	calls := make(chan string, 8)
	require.NoError(t, bridge.Subscribe(ctx, "audit", func(ctx context.Context, msg Message) error {
		calls <- string(msg.Payload)
		if string(msg.Payload) == `"bad"` {
			return errors.New("cannot decode")
		}
		return nil
	}))

	require.NoError(t, bridge.Publish(ctx, Message{Topic: "audit", Payload: []byte(`"bad"`)}))
	require.NoError(t, bridge.Publish(ctx, Message{Topic: "audit", Payload: []byte(`"good"`)}))

	var got []string
	for len(got) < 2 {
		select {
		case p := <-calls:
			got = append(got, p)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out, got %v", got)
		}
	}
	assert.ElementsMatch(t, []string{`"bad"`, `"good"`}, got)

	select {
	case p := <-calls:
		t.Fatalf("unexpected redelivery of %s", p)
	case <-time.After(100 * time.Millisecond):
	}
}
