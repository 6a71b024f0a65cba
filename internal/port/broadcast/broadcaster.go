// Package broadcast defines the port for fanning change events out to
// connected subscribers.
package broadcast

import (
	"context"

	"github.com/eventpulse/eventpulse/internal/domain/change"
)

// Broadcaster delivers one message to every connected subscriber. Delivery is
// at-most-once per subscriber with no replay; a failed subscriber is evicted
// without affecting the others.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg change.Message)
}
