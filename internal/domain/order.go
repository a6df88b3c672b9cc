package domain

import "time"

// Order represents a customer order entity. The struct carries json tags
// because the exact same row shape is served over REST and pushed over the
// websocket channel.
type Order struct {
	ID           int       `json:"id"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Items        string    `json:"items"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
