package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"orderdash/internal/interfaces"
)

const (
	sendBufferSize = 32
	writeTimeout   = 10 * time.Second
)

// client wraps one websocket connection. All writes go through the send
// channel and a single writer goroutine so frames never interleave.
type client struct {
	id   interfaces.ConnID
	conn *websocket.Conn

	mu     sync.Mutex
	closed bool
	send   chan outbound
}

// enqueue hands an envelope to the writer goroutine. A closed client or a
// full buffer drops the envelope; delivery is best-effort at-most-once.
func (c *client) enqueue(env outbound) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- env:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *client) writePump() {
	for env := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteJSON(env); err != nil {
			return
		}
	}
}

// Hub owns the transport side of live connections: which ConnID maps to
// which socket. It is the push primitive the broadcast router delivers
// through; scope decisions stay in the realtime package.
type Hub struct {
	mu      sync.RWMutex
	clients map[interfaces.ConnID]*client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[interfaces.ConnID]*client)}
}

// Push implements interfaces.Pusher.
func (h *Hub) Push(id interfaces.ConnID, event string, payload interface{}) {
	h.mu.RLock()
	c, ok := h.clients[id]
	h.mu.RUnlock()
	if !ok {
		return
	}

	c.enqueue(outbound{Event: event, Data: payload})
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

func (h *Hub) remove(id interfaces.ConnID) {
	h.mu.Lock()
	c, ok := h.clients[id]
	delete(h.clients, id)
	h.mu.Unlock()

	if ok {
		c.close()
	}
}
