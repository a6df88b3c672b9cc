package interfaces

import (
	"context"
	"time"

	"orderdash/internal/domain"
)

// OrderEventMessage mirrors a broadcast event onto RabbitMQ for external
// consumers (notification services and the like).
type OrderEventMessage struct {
	Event     string       `json:"event"`
	Order     domain.Order `json:"order"`
	Timestamp time.Time    `json:"timestamp"`
}

type MessagePublisher interface {
	PublishOrderEvent(ctx context.Context, msg OrderEventMessage) error
}

type NotificationHandler func(ctx context.Context, body []byte) error

type MessageConsumer interface {
	ConsumeNotifications(ctx context.Context, handler NotificationHandler) error
}
