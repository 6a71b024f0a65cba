package http

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes attaches all API routes to the router.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Route("/api", func(r chi.Router) {
		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.handleListEvents)
			r.Post("/", h.handleCreateEvent)
			r.Get("/{id}", h.handleGetEvent)
			r.Patch("/{id}", h.handleUpdateEvent)
			r.Delete("/{id}", h.handleDeleteEvent)
			r.Get("/{id}/tickets", h.handleListEventTickets)
		})
		r.Route("/tickets", func(r chi.Router) {
			r.Get("/{id}", h.handleGetTicket)
			r.Post("/{id}/purchase", h.handlePurchaseTicket)
		})
	})
}
