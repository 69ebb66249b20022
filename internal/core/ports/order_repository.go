package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for parent order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate together with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. Only status and its
	// timestamp trail can change after creation.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllUncompleted retrieves all orders whose status is not final.
	// Used by the status reconciliation sweep.
	GetAllUncompleted(ctx context.Context) ([]*order.Order, error)
}
