package events

import (
	"context"
	"log/slog"

	"github.com/nfrund/enroll/internal/pubsub"
)

// SubscribeAudit writes every registration event to logger until ctx is canceled.
func SubscribeAudit(ctx context.Context, sub pubsub.Subscriber, logger *slog.Logger) error {
	return pubsub.Subscribe(ctx, sub, Registration, func(ctx context.Context, wizardID string, ev RegistrationEvent) error {
		attrs := []any{"wizard_id", wizardID, "kind", ev.Kind, "at", ev.At}
		if ev.Step != "" {
			attrs = append(attrs, "step", ev.Step)
		}
		if ev.Code != "" {
			attrs = append(attrs, "code", ev.Code)
		}

		level := slog.LevelInfo
		if ev.Kind == KindStepFailed {
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, "registration event", attrs...)
		return nil
	})
}
