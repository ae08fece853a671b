package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

//go:generate mockgen -source=notifier.go -destination=mock/notifier_mock.go -package=mock

// Gateway delivers a human-readable notification line. Best effort:
// implementations log failures and never return them to the caller.
type Gateway interface {
	Notify(ctx context.Context, message string)
}

// LogGateway is the no-configuration default: the notification ends up
// in the process log and nowhere else.
type LogGateway struct {
	logger *zap.Logger
}

func NewLogGateway(logger *zap.Logger) *LogGateway {
	return &LogGateway{logger: logger.Named("notifier.log")}
}

func (g *LogGateway) Notify(_ context.Context, message string) {
	g.logger.Info("notification", zap.String("message", message))
}

// WebhookGateway POSTs the message as JSON to a configured URL.
type WebhookGateway struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

func NewWebhookGateway(url string, logger *zap.Logger) *WebhookGateway {
	return &WebhookGateway{
		url: url,
		client: &http.Client{
			Timeout: 3 * time.Second,
		},
		logger: logger.Named("notifier.webhook"),
	}
}

func (g *WebhookGateway) Notify(ctx context.Context, message string) {
	body, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		g.logger.Error("encode notification failed", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		g.logger.Error("build notification request failed", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("deliver notification failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		g.logger.Warn("notification endpoint rejected message",
			zap.Int("status", resp.StatusCode),
		)
		return
	}

	g.logger.Debug("notification delivered", zap.String("message", message))
}
