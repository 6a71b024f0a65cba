package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"

	"github.com/eventpulse/eventpulse/internal/domain/change"
	"github.com/eventpulse/eventpulse/internal/port/broadcast"
)

// HandleWS upgrades the request to a WebSocket subscriber connection and
// registers it with the hub. It blocks until the transport closes; the
// request context must stay live for the duration of the subscription.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // CORS handled by middleware
	})
	if err != nil {
		slog.Error("websocket accept failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	s := h.accept(ws, cancel)
	slog.Info("subscriber connected", "subscriber", s.id, "remote", r.RemoteAddr)

	go h.writeLoop(s)
	h.readLoop(ctx, s)
}

// Ingress returns the handler for the hub's webhook endpoint. It decodes the
// change envelope and hands it to the broadcaster; the response body exists
// only for the notifier's logs.
func Ingress(b broadcast.Broadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var msg change.Message
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid webhook body"})
			return
		}

		b.Broadcast(r.Context(), msg)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "pushed"})
	}
}
