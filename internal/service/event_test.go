package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eventpulse/eventpulse/internal/domain"
	"github.com/eventpulse/eventpulse/internal/domain/change"
	"github.com/eventpulse/eventpulse/internal/domain/event"
	"github.com/eventpulse/eventpulse/internal/service"
)

func TestCreateEventProducesOneChangeEvent(t *testing.T) {
	store := newMemStore()
	notify := &recordingNotifier{}
	svc := service.NewEventService(store, notify, nil, 0)

	e, err := svc.Create(context.Background(), fullCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.ID == 0 {
		t.Fatal("expected assigned event id")
	}
	if !e.IsActive.Bool() {
		t.Fatal("expected stored event to be active")
	}

	got := notify.recorded()
	if len(got) != 1 {
		t.Fatalf("expected exactly one change event, got %d", len(got))
	}
	if got[0].Kind != change.KindEventCreated {
		t.Fatalf("expected kind %q, got %q", change.KindEventCreated, got[0].Kind)
	}
	if got[0].Event == nil || got[0].Event.ID != e.ID {
		t.Fatalf("change event payload should carry the stored row, got %+v", got[0].Event)
	}
}

func TestCreateEventMissingFieldTouchesNothing(t *testing.T) {
	store := newMemStore()
	notify := &recordingNotifier{}
	svc := service.NewEventService(store, notify, nil, 0)

	req := fullCreateRequest()
	req.Organizer = nil

	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(store.events) != 0 {
		t.Fatal("storage must be untouched on validation failure")
	}
	if len(notify.recorded()) != 0 {
		t.Fatal("no change event may be produced for a failed mutation")
	}
}

func TestUpdateEventAppliesOnlySuppliedFields(t *testing.T) {
	store := newMemStore()
	notify := &recordingNotifier{}
	svc := service.NewEventService(store, notify, nil, 0)

	e, err := svc.Create(context.Background(), fullCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	notify.events = nil

	updated, err := svc.Update(context.Background(), e.ID, event.UpdateRequest{Location: strptr("Hamburg")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Location != "Hamburg" {
		t.Fatalf("expected location Hamburg, got %s", updated.Location)
	}
	if updated.Title != e.Title {
		t.Fatalf("unsupplied field changed: title %s -> %s", e.Title, updated.Title)
	}

	got := notify.recorded()
	if len(got) != 1 || got[0].Kind != change.KindEventUpdated {
		t.Fatalf("expected one EventUpdated change event, got %+v", got)
	}
}

func TestUpdateEventEmptyRequestFails(t *testing.T) {
	store := newMemStore()
	notify := &recordingNotifier{}
	svc := service.NewEventService(store, notify, nil, 0)

	e, err := svc.Create(context.Background(), fullCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	notify.events = nil

	_, err = svc.Update(context.Background(), e.ID, event.UpdateRequest{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty update, got %v", err)
	}
	if len(notify.recorded()) != 0 {
		t.Fatal("failed update must not produce a change event")
	}

	stored, _ := store.GetEvent(context.Background(), e.ID)
	if stored.Title != e.Title {
		t.Fatal("storage must be untouched on empty update")
	}
}

func TestUpdateEventUnknownID(t *testing.T) {
	svc := service.NewEventService(newMemStore(), &recordingNotifier{}, nil, 0)

	_, err := svc.Update(context.Background(), 999, event.UpdateRequest{Title: strptr("x")})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteEventChangeEventCarriesOnlyID(t *testing.T) {
	store := newMemStore()
	notify := &recordingNotifier{}
	svc := service.NewEventService(store, notify, nil, 0)

	e, err := svc.Create(context.Background(), fullCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	notify.events = nil

	if err := svc.Delete(context.Background(), e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got := notify.recorded()
	if len(got) != 1 || got[0].Kind != change.KindEventDeleted {
		t.Fatalf("expected one EventDeleted change event, got %+v", got)
	}
	if got[0].EventID != e.ID || got[0].Event != nil {
		t.Fatalf("deletion change event should carry only the id, got %+v", got[0])
	}

	if err := svc.Delete(context.Background(), e.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestListEventsServedFromCache(t *testing.T) {
	store := newMemStore()
	svc := service.NewEventService(store, &recordingNotifier{}, newMemCache(), time.Minute)

	if _, err := svc.Create(context.Background(), fullCreateRequest()); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("first list: %v", err)
	}
	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("second list: %v", err)
	}
	if store.listCalls != 1 {
		t.Fatalf("expected second list to hit the cache, store saw %d list calls", store.listCalls)
	}

	// A mutation invalidates the listing.
	if _, err := svc.Create(context.Background(), fullCreateRequest()); err != nil {
		t.Fatalf("create: %v", err)
	}
	events, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("third list: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events after invalidation, got %d", len(events))
	}
	if store.listCalls != 2 {
		t.Fatalf("expected invalidated list to hit the store, saw %d list calls", store.listCalls)
	}
}
