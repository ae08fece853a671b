package consumer

import (
	"context"
	"encoding/json"

	"go-timeclock/internal/events"
	"go-timeclock/internal/notifier"
	"go-timeclock/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeClockEvents reads clock transitions and hands each message to
// the notifier gateway. Delivery is best effort; a message is committed
// once the gateway had its chance, undeliverable payloads are dropped.
func ConsumeClockEvents(
	ctx context.Context,
	reader *kafkago.Reader,
	gateway notifier.Gateway,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.clock")
	log.Info("clock notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("clock notification consumer stopped")
				return
			}
			log.Error("fetch clock message failed", zap.Error(err))
			continue
		}

		var event events.ClockEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode clock event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		notifyCtx := ctx
		if event.RequestID != "" {
			notifyCtx = contextutil.WithRequestID(ctx, event.RequestID)
		}
		gateway.Notify(notifyCtx, event.Message)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit clock message failed", zap.Error(err))
			continue
		}

		log.Debug("clock event handled",
			zap.String("event_type", event.EventType),
			zap.String("badge_number", event.BadgeNumber),
		)
	}
}
