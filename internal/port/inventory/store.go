// Package inventory defines the storage port for events and tickets.
package inventory

import (
	"context"

	"github.com/eventpulse/eventpulse/internal/domain/event"
	"github.com/eventpulse/eventpulse/internal/domain/ticket"
)

// Store is the persistence interface for event and ticket rows.
// Implementations return domain.ErrNotFound for missing identifiers and
// domain.ErrInsufficientInventory when a decrement would go negative.
type Store interface {
	ListEvents(ctx context.Context) ([]event.Event, error)
	GetEvent(ctx context.Context, id int64) (*event.Event, error)
	CreateEvent(ctx context.Context, req *event.CreateRequest) (*event.Event, error)
	UpdateEvent(ctx context.Context, id int64, req event.UpdateRequest) (*event.Event, error)
	DeleteEvent(ctx context.Context, id int64) error

	GetTicket(ctx context.Context, id int64) (*ticket.Ticket, error)
	ListTicketsByEvent(ctx context.Context, eventID int64) ([]ticket.Ticket, error)

	// DecrementAvailability atomically checks and decrements a ticket's
	// available quantity in one storage operation. The check and the write
	// must not be separable: concurrent calls against the same ticket must
	// serialize so the quantity never goes negative. Inactive tickets are
	// treated as absent.
	DecrementAvailability(ctx context.Context, ticketID int64, quantity int) (*ticket.Ticket, error)
}
