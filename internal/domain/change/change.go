// Package change defines the immutable change event produced by every
// successful mutation and the wire envelope it travels in.
package change

import (
	"encoding/json"
	"fmt"

	"github.com/eventpulse/eventpulse/internal/domain/event"
	"github.com/eventpulse/eventpulse/internal/domain/ticket"
)

// Kind discriminates the change event union.
type Kind string

const (
	KindEventCreated  Kind = "event.created"
	KindEventUpdated  Kind = "event.updated"
	KindEventDeleted  Kind = "event.deleted"
	KindTicketUpdated Kind = "ticket.updated"
)

// Wire type tags understood by the hub and its subscribers. All event kinds
// share one tag; downstream viewers re-render the whole event either way.
const (
	TypeEventUpdated  = "event_updated"
	TypeTicketUpdated = "ticket_updated"
)

// Event is the tagged union describing one completed mutation. Exactly one
// payload field is set, determined by Kind. Produced once, never mutated.
type Event struct {
	Kind    Kind
	Event   *event.Event // KindEventCreated, KindEventUpdated
	EventID int64        // KindEventDeleted
	Ticket  *TicketData  // KindTicketUpdated
}

// TicketData is the ticket payload carried by KindTicketUpdated. It mirrors
// what viewers need to re-render availability; the active flag is not part
// of the push contract.
type TicketData struct {
	ID                int64  `json:"id"`
	EventID           int64  `json:"event_id"`
	Title             string `json:"title"`
	Type              string `json:"type"`
	AvailableQuantity int    `json:"available_quantity"`
}

// EventCreated returns the change event for a newly created event.
func EventCreated(e *event.Event) Event {
	return Event{Kind: KindEventCreated, Event: e}
}

// EventUpdated returns the change event for an updated event.
func EventUpdated(e *event.Event) Event {
	return Event{Kind: KindEventUpdated, Event: e}
}

// EventDeleted returns the change event for a deleted event. Only the
// identifier survives the deletion.
func EventDeleted(id int64) Event {
	return Event{Kind: KindEventDeleted, EventID: id}
}

// TicketUpdated returns the change event for a ticket whose availability
// changed.
func TicketUpdated(t *ticket.Ticket) Event {
	return Event{Kind: KindTicketUpdated, Ticket: &TicketData{
		ID:                t.ID,
		EventID:           t.EventID,
		Title:             t.Title,
		Type:              t.Type,
		AvailableQuantity: t.AvailableQuantity,
	}}
}

// Message is the envelope shared by the webhook hop and the subscriber push:
// subscribers receive exactly the bytes the hub ingested.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// WireMessage serializes the change event into its transport envelope.
func (e Event) WireMessage() (Message, error) {
	var (
		typ     string
		payload any
	)

	switch e.Kind {
	case KindEventCreated, KindEventUpdated:
		typ, payload = TypeEventUpdated, e.Event
	case KindEventDeleted:
		typ, payload = TypeEventUpdated, struct {
			ID int64 `json:"id"`
		}{ID: e.EventID}
	case KindTicketUpdated:
		typ, payload = TypeTicketUpdated, e.Ticket
	default:
		return Message{}, fmt.Errorf("unknown change kind %q", e.Kind)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("marshal %s payload: %w", e.Kind, err)
	}
	return Message{Type: typ, Data: data}, nil
}
