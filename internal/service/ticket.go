package service

import (
	"context"

	"github.com/eventpulse/eventpulse/internal/domain/change"
	"github.com/eventpulse/eventpulse/internal/domain/ticket"
	"github.com/eventpulse/eventpulse/internal/port/inventory"
	"github.com/eventpulse/eventpulse/internal/port/notifier"
)

// TicketService handles ticket reads and the purchase mutation.
type TicketService struct {
	store    inventory.Store
	notifier notifier.Notifier
}

// NewTicketService creates a TicketService.
func NewTicketService(store inventory.Store, n notifier.Notifier) *TicketService {
	return &TicketService{store: store, notifier: n}
}

// Get returns a single ticket by id.
func (s *TicketService) Get(ctx context.Context, id int64) (*ticket.Ticket, error) {
	return s.store.GetTicket(ctx, id)
}

// ListByEvent returns every ticket class for an event.
func (s *TicketService) ListByEvent(ctx context.Context, eventID int64) ([]ticket.Ticket, error) {
	return s.store.ListTicketsByEvent(ctx, eventID)
}

// Purchase atomically decrements a ticket's availability by quantity and
// returns the post-purchase row. The check-and-decrement happens inside the
// store in one atomic operation; this layer never reads then writes.
func (s *TicketService) Purchase(ctx context.Context, ticketID int64, quantity int) (*ticket.Ticket, error) {
	if err := ticket.ValidatePurchase(quantity); err != nil {
		return nil, err
	}

	t, err := s.store.DecrementAvailability(ctx, ticketID, quantity)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, change.TicketUpdated(t))
	return t, nil
}
