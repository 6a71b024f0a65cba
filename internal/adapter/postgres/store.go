package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventpulse/eventpulse/internal/domain"
	"github.com/eventpulse/eventpulse/internal/domain/event"
)

// Store implements inventory.Store using PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const eventColumns = `id, title, description, location, date, image_url, organizer, is_active`

func scanEvent(row pgx.Row) (event.Event, error) {
	var (
		e      event.Event
		active bool
	)
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.Date, &e.ImageURL, &e.Organizer, &active)
	if err != nil {
		return event.Event{}, err
	}
	e.IsActive = domain.IntBool(active)
	return e, nil
}

// ListEvents returns all events, newest first.
func (s *Store) ListEvents(ctx context.Context) ([]event.Event, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetEvent returns a single event by id.
func (s *Store) GetEvent(ctx context.Context, id int64) (*event.Event, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id)

	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get event %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get event %d: %w", id, err)
	}
	return &e, nil
}

// CreateEvent inserts a new event row and returns it with the assigned id.
func (s *Store) CreateEvent(ctx context.Context, req *event.CreateRequest) (*event.Event, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO events (title, description, location, date, image_url, organizer, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+eventColumns,
		*req.Title, *req.Description, *req.Location, *req.Date, *req.ImageURL, *req.Organizer, req.IsActive.Bool())

	e, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return &e, nil
}

// UpdateEvent applies only the supplied fields, then re-reads and returns the
// full row.
func (s *Store) UpdateEvent(ctx context.Context, id int64, req event.UpdateRequest) (*event.Event, error) {
	sets := make([]string, 0, 7)
	args := []any{id}

	add := func(col string, val any) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.Location != nil {
		add("location", *req.Location)
	}
	if req.Date != nil {
		add("date", *req.Date)
	}
	if req.ImageURL != nil {
		add("image_url", *req.ImageURL)
	}
	if req.Organizer != nil {
		add("organizer", *req.Organizer)
	}
	if req.IsActive != nil {
		add("is_active", req.IsActive.Bool())
	}

	if len(sets) == 0 {
		return nil, fmt.Errorf("no valid fields provided to update: %w", domain.ErrValidation)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE events SET `+strings.Join(sets, ", ")+` WHERE id = $1`, args...)
	if err != nil {
		return nil, fmt.Errorf("update event %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("update event %d: %w", id, domain.ErrNotFound)
	}

	return s.GetEvent(ctx, id)
}

// DeleteEvent removes the event row. Tickets cascade at the schema level.
func (s *Store) DeleteEvent(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete event %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
