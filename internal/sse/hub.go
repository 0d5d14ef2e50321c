// Package sse pushes server-sent events to connected clients. Each user gets
// an independent subscriber set; events for one user never reach another.
package sse

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Event is one server-sent event.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub fans events out to per-user subscribers.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[chan Event]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[int64]map[chan Event]struct{})}
}

// Subscribe registers a new listener for one user. The returned cancel func
// must be called when the client disconnects.
func (h *Hub) Subscribe(uid int64) (<-chan Event, func()) {
	ch := make(chan Event, 8)

	h.mu.Lock()
	if h.clients[uid] == nil {
		h.clients[uid] = make(map[chan Event]struct{})
	}
	h.clients[uid][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if subs, ok := h.clients[uid]; ok {
			delete(subs, ch)
			if len(subs) == 0 {
				delete(h.clients, uid)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber of one user. Slow clients
// with a full buffer are skipped rather than blocking the publisher.
func (h *Hub) Publish(uid int64, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.clients[uid] {
		select {
		case ch <- ev:
		default:
			log.Warn().Int64("uid", uid).Str("type", ev.Type).Msg("sse client buffer full, event dropped")
		}
	}
}

// Subscribers reports how many listeners a user currently has.
func (h *Hub) Subscribers(uid int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[uid])
}
