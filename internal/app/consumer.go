package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-timeclock/internal/events"
	"go-timeclock/internal/messaging/kafka/consumer"
	"go-timeclock/internal/notifier"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer delivers clock notifications. Without a webhook URL the
// gateway degrades to log-only, which keeps the boundary a no-op
// rather than an error when nothing is configured.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	var gateway notifier.Gateway
	if url := os.Getenv("NOTIFY_WEBHOOK_URL"); url != "" {
		gateway = notifier.NewWebhookGateway(url, logger)
	} else {
		gateway = notifier.NewLogGateway(logger)
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.ClockTopic,
		GroupID:        "go-timeclock-notifier",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeClockEvents(ctx, reader, gateway, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
