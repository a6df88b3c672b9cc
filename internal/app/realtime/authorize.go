package realtime

import (
	"orderdash/internal/domain"
)

// Operation names the state-changing and read operations available on the
// bidirectional channel. Values double as wire event names.
type Operation string

const (
	OpCreateOrder       Operation = "create-order"
	OpUpdateOrderStatus Operation = "update-order-status"
	OpGetAllOrders      Operation = "get-all-orders"
	OpGetMyOrders       Operation = "get-my-orders"
)

// Authorize applies the channel policy table: updating order status and
// listing all orders require staff or admin; everything else is open to any
// role, including a connection that never declared one. The result is always
// a definite allow (nil) or deny (domain.ErrUnauthorized).
func Authorize(role domain.Role, op Operation) error {
	switch op {
	case OpUpdateOrderStatus, OpGetAllOrders:
		if role != domain.RoleStaff && role != domain.RoleAdmin {
			return domain.ErrUnauthorized
		}
	}
	return nil
}
