package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/deckflow-admin/internal/events"
)

// RegisterEventLogging subscribes a structured-log audit trail to the domain
// events emitted by the review and payout flows.
func RegisterEventLogging(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}
	log := func(ctx context.Context, event events.Event) error {
		logger.Info(string(event.Type),
			zap.String("subject_id", event.SubjectID),
			zap.String("actor_id", event.ActorID),
			zap.Any("payload", event.Payload))
		return nil
	}
	dispatcher.Subscribe(events.EventRequestCreated, log)
	dispatcher.Subscribe(events.EventRequestReviewed, log)
	dispatcher.Subscribe(events.EventPayoutRejected, log)
}
