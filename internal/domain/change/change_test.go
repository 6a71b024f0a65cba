package change

import (
	"encoding/json"
	"testing"

	"github.com/eventpulse/eventpulse/internal/domain"
	"github.com/eventpulse/eventpulse/internal/domain/event"
	"github.com/eventpulse/eventpulse/internal/domain/ticket"
)

func TestEventCreatedWireMessage(t *testing.T) {
	e := &event.Event{
		ID:        42,
		Title:     "Launch Party",
		Location:  "Berlin",
		Date:      "2026-10-01",
		Organizer: "ACME",
		IsActive:  domain.IntBool(true),
	}

	msg, err := EventCreated(e).WireMessage()
	if err != nil {
		t.Fatalf("wire message: %v", err)
	}
	if msg.Type != TypeEventUpdated {
		t.Fatalf("expected type %q, got %q", TypeEventUpdated, msg.Type)
	}

	var data map[string]any
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if data["id"] != float64(42) {
		t.Fatalf("expected id 42 in payload, got %v", data["id"])
	}
	if data["is_active"] != float64(1) {
		t.Fatalf("expected is_active as integer 1, got %v", data["is_active"])
	}
}

func TestEventDeletedWireMessage(t *testing.T) {
	msg, err := EventDeleted(7).WireMessage()
	if err != nil {
		t.Fatalf("wire message: %v", err)
	}
	if msg.Type != TypeEventUpdated {
		t.Fatalf("expected type %q, got %q", TypeEventUpdated, msg.Type)
	}
	if string(msg.Data) != `{"id":7}` {
		t.Fatalf("deletion payload should carry only the id, got %s", msg.Data)
	}
}

func TestTicketUpdatedWireMessage(t *testing.T) {
	tk := &ticket.Ticket{
		ID:                3,
		EventID:           42,
		Title:             "Early Bird",
		Type:              "standard",
		AvailableQuantity: 17,
		IsActive:          domain.IntBool(true),
	}

	msg, err := TicketUpdated(tk).WireMessage()
	if err != nil {
		t.Fatalf("wire message: %v", err)
	}
	if msg.Type != TypeTicketUpdated {
		t.Fatalf("expected type %q, got %q", TypeTicketUpdated, msg.Type)
	}

	var data map[string]any
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if data["available_quantity"] != float64(17) {
		t.Fatalf("expected available_quantity 17, got %v", data["available_quantity"])
	}
	if data["event_id"] != float64(42) {
		t.Fatalf("expected event_id 42, got %v", data["event_id"])
	}
	if _, present := data["is_active"]; present {
		t.Fatal("ticket push payload should not carry is_active")
	}
}

func TestUnknownKindWireMessage(t *testing.T) {
	_, err := (Event{Kind: Kind("bogus")}).WireMessage()
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
