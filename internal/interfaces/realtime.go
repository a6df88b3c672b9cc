package interfaces

// ConnID identifies one live bidirectional session. Assigned by the
// transport on connect, immutable for the session's lifetime.
type ConnID string

// Pusher delivers a typed event to a single connection. Delivery is
// best-effort at-most-once; implementations drop on a slow or gone peer.
type Pusher interface {
	Push(id ConnID, event string, payload interface{})
}
