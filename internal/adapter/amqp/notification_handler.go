package amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"orderdash/internal/adapter/logger"
	"orderdash/internal/interfaces"
)

// NotificationHandler consumes mirrored order events. The notifier mode logs
// them; a real deployment would hand them to an email/SMS gateway here.
type NotificationHandler struct {
	logger logger.Logger
}

func NewNotificationHandler(logger logger.Logger) *NotificationHandler {
	return &NotificationHandler{logger: logger}
}

func (h *NotificationHandler) HandleNotification(ctx context.Context, body []byte) error {
	var msg interfaces.OrderEventMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("failed to unmarshal order event: %w", err)
	}

	h.logger.Info("order_event_received", fmt.Sprintf("Order %d is now %s", msg.Order.ID, msg.Order.Status), "", map[string]interface{}{
		"event":       msg.Event,
		"order_id":    msg.Order.ID,
		"customer_id": msg.Order.CustomerID,
		"status":      string(msg.Order.Status),
	})

	return nil
}
