// Package webhook implements the notifier port as a fire-and-forget HTTP POST
// to the broadcast hub's ingress endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/eventpulse/eventpulse/internal/domain/change"
)

// ErrDelivery indicates the hub hop failed. It never leaves this package
// through Notify; it exists so send failures are classifiable in logs and
// tests.
var ErrDelivery = errors.New("webhook delivery failed")

// Notifier posts change events to the hub's /webhook endpoint. Delivery is
// at-least-once attempted, at-most-once received: no retry, no backlog, and
// a failure never reaches the mutation caller.
type Notifier struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

// New creates a webhook notifier targeting the given ingress URL.
func New(url string, timeout time.Duration) *Notifier {
	return &Notifier{
		url:     url,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

// Notify serializes the change event and attempts one delivery to the hub.
// The mutation has already committed when this runs, so failures are logged
// and swallowed.
func (n *Notifier) Notify(ctx context.Context, ev change.Event) {
	if err := n.send(ctx, ev); err != nil {
		slog.Warn("change event delivery failed", "kind", ev.Kind, "error", err)
	}
}

func (n *Notifier) send(ctx context.Context, ev change.Event) error {
	msg, err := ev.WireMessage()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: marshal envelope: %w", ErrDelivery, err)
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %w", ErrDelivery, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// The hub's response carries no meaning beyond logging; drain so the
	// connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: hub returned %d", ErrDelivery, resp.StatusCode)
	}

	slog.Debug("change event delivered", "kind", ev.Kind, "type", msg.Type)
	return nil
}
