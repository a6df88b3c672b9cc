package interfaces

import (
	"context"

	"orderdash/internal/domain"
)

// OrderRepository is the durable order store (Adapter/Postgres).
type OrderRepository interface {
	// Create inserts a row and returns the server-assigned id.
	Create(ctx context.Context, customerID, customerName, items string, status domain.Status) (int, error)
	// FindByID returns domain.ErrNotFound (wrapped) when no row exists.
	FindByID(ctx context.Context, id int) (*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error)
	// UpdateStatus touches only the status column and returns the affected
	// row count. Zero affected rows is not an error here.
	UpdateStatus(ctx context.Context, id int, status domain.Status) (int64, error)
	Delete(ctx context.Context, id int) (int64, error)
}
