// Package notifier defines the change notification port.
package notifier

import (
	"context"

	"github.com/eventpulse/eventpulse/internal/domain/change"
)

// Notifier delivers a change event toward the broadcast hub. Delivery is
// best-effort: the mutation has already committed by the time Notify runs,
// so implementations log failures and never surface them to the caller.
type Notifier interface {
	Notify(ctx context.Context, ev change.Event)
}
