package http

import (
	"net/http"

	"github.com/eventpulse/eventpulse/internal/domain/event"
	"github.com/eventpulse/eventpulse/internal/service"
)

// Handlers bundles the services exposed over HTTP.
type Handlers struct {
	Events  *service.EventService
	Tickets *service.TicketService
}

// handleListEvents serves GET /api/events.
func (h *Handlers) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Events.List(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to list events")
		return
	}
	if events == nil {
		events = []event.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// handleGetEvent serves GET /api/events/{id}.
func (h *Handlers) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	e, err := h.Events.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// handleCreateEvent serves POST /api/events.
func (h *Handlers) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[event.CreateRequest](w, r)
	if !ok {
		return
	}

	e, err := h.Events.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, "failed to add event")
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Success  bool         `json:"success"`
		EventID  int64        `json:"event_id"`
		NewEvent *event.Event `json:"new_event"`
	}{true, e.ID, e})
}

// handleUpdateEvent serves PATCH /api/events/{id}.
func (h *Handlers) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	req, ok := readJSON[event.UpdateRequest](w, r)
	if !ok {
		return
	}

	e, err := h.Events.Update(r.Context(), id, req)
	if err != nil {
		writeDomainError(w, err, "event not found")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success      bool         `json:"success"`
		EventID      int64        `json:"event_id"`
		UpdatedEvent *event.Event `json:"updated_event"`
	}{true, e.ID, e})
}

// handleDeleteEvent serves DELETE /api/events/{id}.
func (h *Handlers) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.Events.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, "event not found")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success        bool  `json:"success"`
		DeletedEventID int64 `json:"deleted_event_id"`
	}{true, id})
}

// handleListEventTickets serves GET /api/events/{id}/tickets.
func (h *Handlers) handleListEventTickets(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	tickets, err := h.Tickets.ListByEvent(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to list tickets")
		return
	}
	writeJSON(w, http.StatusOK, tickets)
}

// handleGetTicket serves GET /api/tickets/{id}.
func (h *Handlers) handleGetTicket(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	t, err := h.Tickets.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "ticket not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// purchaseRequest is the POST /api/tickets/{id}/purchase body.
type purchaseRequest struct {
	Quantity int `json:"quantity"`
}

// handlePurchaseTicket serves POST /api/tickets/{id}/purchase.
func (h *Handlers) handlePurchaseTicket(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	req, ok := readJSON[purchaseRequest](w, r)
	if !ok {
		return
	}

	t, err := h.Tickets.Purchase(r.Context(), id, req.Quantity)
	if err != nil {
		writeDomainError(w, err, "ticket not found or inactive")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success           bool  `json:"success"`
		TicketID          int64 `json:"ticket_id"`
		AvailableQuantity int   `json:"available_quantity"`
	}{true, t.ID, t.AvailableQuantity})
}
