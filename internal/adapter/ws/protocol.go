package ws

import (
	"encoding/json"

	"orderdash/internal/domain"
)

// inbound is the envelope clients send. ID is the client's ack correlation
// id; zero means no acknowledgment is expected.
type inbound struct {
	Event string          `json:"event"`
	ID    uint64          `json:"id,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// outbound is the envelope the server writes, both for pushes and acks.
type outbound struct {
	Event string      `json:"event"`
	ID    uint64      `json:"id,omitempty"`
	Data  interface{} `json:"data,omitempty"`
}

const eventAck = "ack"

type joinRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type createOrderRequest struct {
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Items        string `json:"items"`
}

type updateStatusRequest struct {
	OrderID int    `json:"order_id"`
	Status  string `json:"status"`
}

type myOrdersRequest struct {
	CustomerID string `json:"customer_id"`
}

type orderAck struct {
	Success bool          `json:"success"`
	Order   *domain.Order `json:"order"`
}

type ordersAck struct {
	Success bool            `json:"success"`
	Orders  []*domain.Order `json:"orders"`
}

type errorAck struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
