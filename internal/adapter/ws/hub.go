// Package ws implements the WebSocket broadcast hub and subscriber
// connection lifecycle.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/eventpulse/eventpulse/internal/domain/change"
)

// subscriberState tracks the connection lifecycle:
// Connected -> Closing -> Closed, or straight to Closed on abrupt error.
type subscriberState int

const (
	stateConnected subscriberState = iota
	stateClosing
	stateClosed
)

// subscriber is one live viewer connection. Messages are queued on send and
// written by a dedicated goroutine, so a stalled peer never delays fan-out
// to the others.
type subscriber struct {
	id     string
	ws     *websocket.Conn
	send   chan []byte
	cancel context.CancelFunc
	state  subscriberState // guarded by Hub.mu

	// fullSince holds the unix nanos of the first overflow of a still-full
	// queue, 0 while the queue is draining. Written by Broadcast and cleared
	// by writeLoop.
	fullSince atomic.Int64
}

// Hub owns the subscriber registry and fans ingested change events out to
// every connected member. No other component touches connection state.
type Hub struct {
	mu   sync.RWMutex
	subs map[*subscriber]struct{}

	writeTimeout time.Duration
	sendBuffer   int
}

// NewHub creates a hub. writeTimeout bounds each subscriber write; sendBuffer
// is the per-subscriber queue depth. A consumer that keeps its queue full for
// longer than writeTimeout is evicted.
func NewHub(writeTimeout time.Duration, sendBuffer int) *Hub {
	return &Hub{
		subs:         make(map[*subscriber]struct{}),
		writeTimeout: writeTimeout,
		sendBuffer:   sendBuffer,
	}
}

// Broadcast serializes the message once and delivers the identical byte
// sequence to every connected subscriber. A full queue drops the message for
// that subscriber; the subscriber is evicted only once its queue has stayed
// full for longer than the write timeout. Delivery to the remaining members
// continues either way.
func (h *Hub) Broadcast(_ context.Context, msg change.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("broadcast marshal failed", "type", msg.Type, "error", err)
		return
	}

	var evict []*subscriber

	h.mu.RLock()
	for s := range h.subs {
		if s.state != stateConnected {
			continue
		}
		select {
		case s.send <- data:
			s.fullSince.Store(0)
		default:
			// Queue full: the message is dropped for this subscriber. A
			// peer still making progress clears fullSince in writeLoop;
			// one that stays full for a whole write timeout is treated
			// as failed.
			now := time.Now().UnixNano()
			since := s.fullSince.Load()
			switch {
			case since == 0:
				s.fullSince.CompareAndSwap(0, now)
			case time.Duration(now-since) >= h.writeTimeout:
				evict = append(evict, s)
			}
		}
	}
	h.mu.RUnlock()

	for _, s := range evict {
		slog.Warn("evicting slow subscriber", "subscriber", s.id)
		h.remove(s)
	}
}

// ConnectionCount returns the number of registered subscribers.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// accept registers a new subscriber as Connected and returns it.
func (h *Hub) accept(ws *websocket.Conn, cancel context.CancelFunc) *subscriber {
	s := &subscriber{
		id:     uuid.NewString(),
		ws:     ws,
		send:   make(chan []byte, h.sendBuffer),
		cancel: cancel,
		state:  stateConnected,
	}

	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()

	return s
}

// remove transitions a subscriber to Closed and evicts it from the registry.
// Safe to call multiple times; only the first call does work.
func (h *Hub) remove(s *subscriber) {
	h.mu.Lock()
	if s.state == stateClosed {
		h.mu.Unlock()
		return
	}
	s.state = stateClosing
	delete(h.subs, s)
	close(s.send)
	s.state = stateClosed
	h.mu.Unlock()

	s.cancel()
	slog.Info("subscriber disconnected", "subscriber", s.id)
}

// writeLoop drains the subscriber's queue onto the wire. Each write is
// bounded by the hub's write timeout; a failed or timed-out write closes the
// connection rather than stalling the hub.
func (h *Hub) writeLoop(s *subscriber) {
	defer func() { _ = s.ws.Close(websocket.StatusNormalClosure, "") }()

	for data := range s.send {
		ctx, cancel := context.WithTimeout(context.Background(), h.writeTimeout)
		err := s.ws.Write(ctx, websocket.MessageText, data)
		cancel()
		if err != nil {
			slog.Debug("subscriber write failed", "subscriber", s.id, "error", err)
			h.remove(s)
			return
		}
		s.fullSince.Store(0)
	}
}

// readLoop consumes inbound frames to detect disconnects and service pings.
func (h *Hub) readLoop(ctx context.Context, s *subscriber) {
	defer h.remove(s)
	for {
		if _, _, err := s.ws.Read(ctx); err != nil {
			return
		}
	}
}
