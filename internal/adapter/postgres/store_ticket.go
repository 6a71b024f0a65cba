package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/eventpulse/eventpulse/internal/domain"
	"github.com/eventpulse/eventpulse/internal/domain/ticket"
)

const ticketColumns = `id, event_id, title, type, available_quantity, is_active`

func scanTicket(row pgx.Row) (ticket.Ticket, error) {
	var (
		t      ticket.Ticket
		active bool
	)
	err := row.Scan(&t.ID, &t.EventID, &t.Title, &t.Type, &t.AvailableQuantity, &active)
	if err != nil {
		return ticket.Ticket{}, err
	}
	t.IsActive = domain.IntBool(active)
	return t, nil
}

// GetTicket returns a single ticket by id, active or not.
func (s *Store) GetTicket(ctx context.Context, id int64) (*ticket.Ticket, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id)

	t, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get ticket %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get ticket %d: %w", id, err)
	}
	return &t, nil
}

// ListTicketsByEvent returns every ticket class belonging to an event.
func (s *Store) ListTicketsByEvent(ctx context.Context, eventID int64) ([]ticket.Ticket, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE event_id = $1 ORDER BY id`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list tickets for event %d: %w", eventID, err)
	}
	defer rows.Close()

	var tickets []ticket.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

// DecrementAvailability performs the purchase check-and-decrement as a single
// conditional UPDATE. The WHERE clause is the critical section: two concurrent
// purchases of the same ticket serialize on the row, and the one that would
// drive the quantity negative matches zero rows instead.
func (s *Store) DecrementAvailability(ctx context.Context, ticketID int64, quantity int) (*ticket.Ticket, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE tickets
		 SET available_quantity = available_quantity - $2
		 WHERE id = $1 AND is_active AND available_quantity >= $2
		 RETURNING `+ticketColumns,
		ticketID, quantity)

	t, err := scanTicket(row)
	if err == nil {
		return &t, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("decrement ticket %d: %w", ticketID, err)
	}

	// No row matched: distinguish a missing/inactive ticket from one that
	// simply lacks inventory.
	var exists bool
	if err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tickets WHERE id = $1 AND is_active)`,
		ticketID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("decrement ticket %d: %w", ticketID, err)
	}
	if !exists {
		return nil, fmt.Errorf("decrement ticket %d: %w", ticketID, domain.ErrNotFound)
	}
	return nil, fmt.Errorf("decrement ticket %d by %d: %w", ticketID, quantity, domain.ErrInsufficientInventory)
}
