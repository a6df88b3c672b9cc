package realtime

import (
	"context"
	"time"

	"orderdash/internal/adapter/logger"
	"orderdash/internal/adapter/metrics"
	"orderdash/internal/domain"
	"orderdash/internal/interfaces"
)

// EventKind classifies an order mutation for broadcast routing.
type EventKind int

const (
	EventCreated EventKind = iota
	EventUpdated
)

// Pushed event names. Customers receive the fine-grained pair, staff and
// admins the coarse pair.
const (
	EventOrderCreated       = "order-created"
	EventOrderUpdated       = "order-updated"
	EventNewOrder           = "new-order"
	EventOrderStatusChanged = "order-status-changed"
	EventUserConnected      = "user-connected"
)

// UserConnectedPayload announces a join to the staff and admin scopes.
type UserConnectedPayload struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Router turns a mutated order into the exact set of targeted pushes. It
// reads scope membership from the registry and delivers through the pusher;
// emission is fire-and-forget and a scope with zero members simply drops the
// event. Every order event is additionally mirrored to the message publisher
// (when one is wired) for consumers outside the websocket channel.
type Router struct {
	registry  *Registry
	pusher    interfaces.Pusher
	publisher interfaces.MessagePublisher
	logger    logger.Logger
	metrics   *metrics.Metrics
}

func NewRouter(registry *Registry, pusher interfaces.Pusher, publisher interfaces.MessagePublisher, lgr logger.Logger, m *metrics.Metrics) *Router {
	return &Router{
		registry:  registry,
		pusher:    pusher,
		publisher: publisher,
		logger:    lgr,
		metrics:   m,
	}
}

// Publish fans an order event out to the owner's customer scope and to the
// combined staff+admin scope. The order of emission between the two groups
// is unspecified.
func (r *Router) Publish(ctx context.Context, order *domain.Order, kind EventKind) {
	customerEvent, roomEvent := EventOrderCreated, EventNewOrder
	if kind == EventUpdated {
		customerEvent, roomEvent = EventOrderUpdated, EventOrderStatusChanged
	}

	r.pushAll(r.registry.CustomerScope(order.CustomerID), customerEvent, order)
	r.pushAll(r.registry.StaffAdminScope(), roomEvent, order)

	if r.metrics != nil {
		if kind == EventCreated {
			r.metrics.OrdersCreated.Inc()
		} else {
			r.metrics.OrdersUpdated.Inc()
		}
	}

	r.mirror(ctx, customerEvent, order)
}

// UserConnected notifies staff and admins that a connection declared its
// identity.
func (r *Router) UserConnected(userID string, role domain.Role) {
	r.pushAll(r.registry.StaffAdminScope(), EventUserConnected, UserConnectedPayload{
		UserID: userID,
		Role:   role,
	})
}

func (r *Router) pushAll(ids []interfaces.ConnID, event string, payload interface{}) {
	for _, id := range ids {
		r.pusher.Push(id, event, payload)
		if r.metrics != nil {
			r.metrics.EventsPushed.WithLabelValues(event).Inc()
		}
	}
}

// mirror publishes the event to RabbitMQ. Best-effort: failures are logged
// and never surface to the mutation path.
func (r *Router) mirror(ctx context.Context, event string, order *domain.Order) {
	if r.publisher == nil {
		return
	}

	msg := interfaces.OrderEventMessage{
		Event:     event,
		Order:     *order,
		Timestamp: time.Now().UTC(),
	}
	if err := r.publisher.PublishOrderEvent(ctx, msg); err != nil {
		r.logger.Error("event_mirror_failed", "Failed to publish order event to RabbitMQ", "", map[string]interface{}{
			"event":    event,
			"order_id": order.ID,
		}, err)
	}
}
