package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/SextoAndar/sexto-andar-auth/internal/api/metrics"
	"github.com/SextoAndar/sexto-andar-auth/internal/core/ports"
)

const requestTimeout = 10 * time.Second

// Config holds the webhook target. An empty URL disables delivery.
type Config struct {
	URL    string
	Secret string
}

// Notifier posts account lifecycle events to the configured internal webhook.
// The receiving service authenticates the call via the X-Internal-Secret
// header rather than a session token.
type Notifier struct {
	cfg    Config
	client *http.Client
	log    zerolog.Logger
}

func NewNotifier(cfg Config, log zerolog.Logger) *Notifier {
	return &Notifier{
		cfg:    cfg,
		client: &http.Client{Timeout: requestTimeout},
		log:    log,
	}
}

type eventPayload struct {
	Event      string    `json:"event"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Deliver sends one event. Failures are returned to the dispatcher for
// logging; there is no retry. Downstream services reconcile on their own.
func (n *Notifier) Deliver(ctx context.Context, event ports.AccountEvent) error {
	if n.cfg.URL == "" {
		n.log.Debug().Str("event_type", event.Type).Msg("webhook disabled, event dropped")
		return nil
	}

	body, err := json.Marshal(eventPayload{
		Event:      event.Type,
		UserID:     event.AccountID,
		Username:   event.Username,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-Secret", n.cfg.Secret)

	resp, err := n.client.Do(req)
	if err != nil {
		metrics.WebhookDeliveriesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("post event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.WebhookDeliveriesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("post event: unexpected status %d", resp.StatusCode)
	}

	metrics.WebhookDeliveriesTotal.WithLabelValues("ok").Inc()
	n.log.Info().
		Str("event_type", event.Type).
		Str("account_id", event.AccountID).
		Msg("webhook delivered")
	return nil
}
