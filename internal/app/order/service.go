package order

import (
	"context"
	"fmt"
	"strings"

	"orderdash/internal/adapter/logger"
	"orderdash/internal/domain"
	"orderdash/internal/interfaces"
)

// Service implements the order mutation operations shared by both entry
// adapters. It only touches the order repository; broadcasting is left to
// the caller so mutation errors never reach the router.
type Service struct {
	repo   interfaces.OrderRepository
	logger logger.Logger
}

func NewService(repo interfaces.OrderRepository, logger logger.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) CreateOrder(ctx context.Context, cmd interfaces.CreateOrderCommand) (*domain.Order, error) {
	if strings.TrimSpace(cmd.CustomerID) == "" ||
		strings.TrimSpace(cmd.CustomerName) == "" ||
		strings.TrimSpace(cmd.Items) == "" {
		return nil, fmt.Errorf("%w: customer_id, customer_name and items are required", domain.ErrValidation)
	}

	// New orders always start out pending regardless of caller input.
	id, err := s.repo.Create(ctx, cmd.CustomerID, cmd.CustomerName, cmd.Items, domain.StatusPending)
	if err != nil {
		s.logger.Error("order_create_failed", "Failed to insert order", "", nil, err)
		return nil, err
	}

	// Re-read to return the canonical row with server-assigned id and timestamp.
	created, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("order_created", "Order created", "", map[string]interface{}{
		"order_id":    created.ID,
		"customer_id": created.CustomerID,
	})

	return created, nil
}

func (s *Service) UpdateStatus(ctx context.Context, orderID int, status string) (*domain.Order, error) {
	newStatus := domain.Status(status)
	if status == "" || !newStatus.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, status)
	}

	// An update touching zero rows is not itself an error; only the empty
	// re-read below decides the order does not exist.
	if _, err := s.repo.UpdateStatus(ctx, orderID, newStatus); err != nil {
		s.logger.Error("order_update_failed", "Failed to update order status", "", map[string]interface{}{
			"order_id": orderID,
		}, err)
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("order_updated", "Order status updated", "", map[string]interface{}{
		"order_id": updated.ID,
		"status":   string(updated.Status),
	})

	return updated, nil
}

func (s *Service) DeleteOrder(ctx context.Context, orderID int) error {
	affected, err := s.repo.Delete(ctx, orderID)
	if err != nil {
		s.logger.Error("order_delete_failed", "Failed to delete order", "", map[string]interface{}{
			"order_id": orderID,
		}, err)
		return err
	}
	if affected == 0 {
		return fmt.Errorf("order %d: %w", orderID, domain.ErrNotFound)
	}

	return nil
}

func (s *Service) GetOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	return s.repo.FindByID(ctx, orderID)
}

func (s *Service) ListOrders(ctx context.Context, customerID string) ([]*domain.Order, error) {
	if customerID != "" {
		return s.repo.ListByCustomer(ctx, customerID)
	}
	return s.repo.ListAll(ctx)
}
