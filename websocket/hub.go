// file: websocket/hub.go
package websocket

import (
	"slices"
	"sync"

	"cashplayzz-web/logger"
)

// ViewObserver is told when live views open and close.
type ViewObserver interface {
	LiveViewOpened(view string)
	LiveViewClosed(view string)
}

// Hub tracks the open connections.
type Hub struct {
	mu       sync.Mutex
	conns    map[*Connection]bool
	observer ViewObserver
}

// NewHub creates a Hub. observer may be nil.
func NewHub(observer ViewObserver) *Hub {
	return &Hub{conns: make(map[*Connection]bool), observer: observer}
}

func (h *Hub) register(c *Connection) {
	h.mu.Lock()
	h.conns[c] = true
	h.mu.Unlock()
	if h.observer != nil {
		h.observer.LiveViewOpened(c.view)
	}
	logger.Debug.Printf("[Hub] %s view opened for session %s", c.view, c.sessionID)
}

func (h *Hub) unregister(c *Connection) {
	h.mu.Lock()
	_, ok := h.conns[c]
	delete(h.conns, c)
	h.mu.Unlock()
	if ok && h.observer != nil {
		h.observer.LiveViewClosed(c.view)
	}
	logger.Debug.Printf("[Hub] %s view closed for session %s", c.view, c.sessionID)
}

// Count returns the number of open connections of view.
func (h *Hub) Count(view string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for c := range h.conns {
		if c.view == view {
			n++
		}
	}
	return n
}

// CloseSession ends the live views of a session, e.g. at logout. With no
// views given every view of the session is closed.
func (h *Hub) CloseSession(sessionID string, views ...string) {
	h.mu.Lock()
	var targets []*Connection
	for c := range h.conns {
		if c.sessionID == sessionID && (len(views) == 0 || slices.Contains(views, c.view)) {
			targets = append(targets, c)
		}
	}
	h.mu.Unlock()
	for _, c := range targets {
		c.cancel()
	}
}

// Shutdown ends every live view.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		c.cancel()
	}
}
