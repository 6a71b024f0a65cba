// Package service implements the mutation business logic on top of ports.
package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/eventpulse/eventpulse/internal/domain/change"
	"github.com/eventpulse/eventpulse/internal/domain/event"
	"github.com/eventpulse/eventpulse/internal/port/cache"
	"github.com/eventpulse/eventpulse/internal/port/inventory"
	"github.com/eventpulse/eventpulse/internal/port/notifier"
)

const eventsCacheKey = "events:all"

// EventService handles event mutations and reads. Every successful mutation
// produces exactly one change event, handed to the notifier before the call
// returns; notifier failures never fail the mutation.
type EventService struct {
	store    inventory.Store
	notifier notifier.Notifier
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewEventService creates an EventService. cache may be nil to disable the
// read cache.
func NewEventService(store inventory.Store, n notifier.Notifier, c cache.Cache, ttl time.Duration) *EventService {
	return &EventService{store: store, notifier: n, cache: c, cacheTTL: ttl}
}

// List returns all events, served from the read cache when warm.
func (s *EventService) List(ctx context.Context) ([]event.Event, error) {
	if s.cache != nil {
		if data, ok, err := s.cache.Get(ctx, eventsCacheKey); err == nil && ok {
			var events []event.Event
			if err := json.Unmarshal(data, &events); err == nil {
				return events, nil
			}
		}
	}

	events, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(events); err == nil {
			_ = s.cache.Set(ctx, eventsCacheKey, data, s.cacheTTL)
		}
	}
	return events, nil
}

// Get returns a single event by id.
func (s *EventService) Get(ctx context.Context, id int64) (*event.Event, error) {
	return s.store.GetEvent(ctx, id)
}

// Create validates and inserts a new event, returning the stored row with
// its assigned id.
func (s *EventService) Create(ctx context.Context, req *event.CreateRequest) (*event.Event, error) {
	if err := event.ValidateCreateRequest(req); err != nil {
		return nil, err
	}

	e, err := s.store.CreateEvent(ctx, req)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.notifier.Notify(ctx, change.EventCreated(e))
	return e, nil
}

// Update applies a partial update and returns the full post-update row.
func (s *EventService) Update(ctx context.Context, id int64, req event.UpdateRequest) (*event.Event, error) {
	if err := event.ValidateUpdateRequest(req); err != nil {
		return nil, err
	}

	e, err := s.store.UpdateEvent(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.notifier.Notify(ctx, change.EventUpdated(e))
	return e, nil
}

// Delete removes an event. The change event carries only the identifier.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteEvent(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.notifier.Notify(ctx, change.EventDeleted(id))
	return nil
}

func (s *EventService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, eventsCacheKey); err != nil {
		slog.Warn("event cache invalidation failed", "error", err)
	}
}
