package interfaces

import (
	"context"

	"orderdash/internal/domain"
)

type CreateOrderCommand struct {
	CustomerID   string
	CustomerName string
	Items        string
}

// OrderService is the mutation service both entry adapters call. It is
// stateless over the connection registry; broadcasting is the caller's step.
type OrderService interface {
	CreateOrder(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID int, status string) (*domain.Order, error)
	DeleteOrder(ctx context.Context, orderID int) error
	GetOrder(ctx context.Context, orderID int) (*domain.Order, error)
	// ListOrders returns orders newest first, filtered to one customer when
	// customerID is non-empty.
	ListOrders(ctx context.Context, customerID string) ([]*domain.Order, error)
}
