package service_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/eventpulse/eventpulse/internal/domain"
	"github.com/eventpulse/eventpulse/internal/domain/change"
	"github.com/eventpulse/eventpulse/internal/domain/event"
	"github.com/eventpulse/eventpulse/internal/domain/ticket"
)

// memStore implements inventory.Store in memory. The per-store mutex makes
// DecrementAvailability a true atomic check-and-decrement, matching the
// contract the postgres adapter provides with a conditional UPDATE.
type memStore struct {
	mu      sync.Mutex
	events  map[int64]event.Event
	tickets map[int64]ticket.Ticket
	nextID  int64

	listCalls int
}

func newMemStore() *memStore {
	return &memStore{
		events:  make(map[int64]event.Event),
		tickets: make(map[int64]ticket.Ticket),
	}
}

func (m *memStore) seedTicket(t ticket.Ticket) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tickets[t.ID] = t
}

func (m *memStore) seedEvent(e event.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[e.ID] = e
}

func (m *memStore) ticketQuantity(id int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tickets[id].AvailableQuantity
}

func (m *memStore) ListEvents(context.Context) ([]event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	events := make([]event.Event, 0, len(m.events))
	for _, e := range m.events {
		events = append(events, e)
	}
	return events, nil
}

func (m *memStore) GetEvent(_ context.Context, id int64) (*event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, fmt.Errorf("get event %d: %w", id, domain.ErrNotFound)
	}
	return &e, nil
}

func (m *memStore) CreateEvent(_ context.Context, req *event.CreateRequest) (*event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e := event.Event{
		ID:          m.nextID,
		Title:       *req.Title,
		Description: *req.Description,
		Location:    *req.Location,
		Date:        *req.Date,
		ImageURL:    *req.ImageURL,
		Organizer:   *req.Organizer,
		IsActive:    *req.IsActive,
	}
	m.events[e.ID] = e
	return &e, nil
}

func (m *memStore) UpdateEvent(_ context.Context, id int64, req event.UpdateRequest) (*event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, fmt.Errorf("update event %d: %w", id, domain.ErrNotFound)
	}
	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.Date != nil {
		e.Date = *req.Date
	}
	if req.ImageURL != nil {
		e.ImageURL = *req.ImageURL
	}
	if req.Organizer != nil {
		e.Organizer = *req.Organizer
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}
	m.events[id] = e
	return &e, nil
}

func (m *memStore) DeleteEvent(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return fmt.Errorf("delete event %d: %w", id, domain.ErrNotFound)
	}
	delete(m.events, id)
	return nil
}

func (m *memStore) GetTicket(_ context.Context, id int64) (*ticket.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tickets[id]
	if !ok {
		return nil, fmt.Errorf("get ticket %d: %w", id, domain.ErrNotFound)
	}
	return &t, nil
}

func (m *memStore) ListTicketsByEvent(_ context.Context, eventID int64) ([]ticket.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var tickets []ticket.Ticket
	for _, t := range m.tickets {
		if t.EventID == eventID {
			tickets = append(tickets, t)
		}
	}
	return tickets, nil
}

func (m *memStore) DecrementAvailability(_ context.Context, ticketID int64, quantity int) (*ticket.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tickets[ticketID]
	if !ok || !t.IsActive.Bool() {
		return nil, fmt.Errorf("decrement ticket %d: %w", ticketID, domain.ErrNotFound)
	}
	if t.AvailableQuantity < quantity {
		return nil, fmt.Errorf("decrement ticket %d by %d: %w", ticketID, quantity, domain.ErrInsufficientInventory)
	}
	t.AvailableQuantity -= quantity
	m.tickets[ticketID] = t
	return &t, nil
}

// recordingNotifier captures every change event it is handed.
type recordingNotifier struct {
	mu     sync.Mutex
	events []change.Event
}

func (n *recordingNotifier) Notify(_ context.Context, ev change.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *recordingNotifier) recorded() []change.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]change.Event(nil), n.events...)
}

// memCache is a trivial cache.Cache for exercising the read-through path.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func strptr(s string) *string { return &s }

func fullCreateRequest() *event.CreateRequest {
	active := domain.IntBool(true)
	return &event.CreateRequest{
		Title:       strptr("Launch Party"),
		Description: strptr("Product launch"),
		Location:    strptr("Berlin"),
		Date:        strptr("2026-10-01"),
		ImageURL:    strptr("https://example.com/poster.png"),
		Organizer:   strptr("ACME"),
		IsActive:    &active,
	}
}
