package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/suborder"
)

// SubOrderRepository defines the persistence contract for sub-order aggregates.
type SubOrderRepository interface {
	// Add persists a new sub-order aggregate together with its items.
	Add(ctx context.Context, aggregate *suborder.SubOrder) error

	// Update persists changes to an existing sub-order. Only status, its
	// timestamp trail, and the item inventory figures can change.
	Update(ctx context.Context, aggregate *suborder.SubOrder) error

	// Get retrieves a sub-order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*suborder.SubOrder, error)

	// GetByOrderID retrieves the full sibling set of a parent order, ordered
	// by sub-order number. The status aggregator derives the parent status
	// from this set, so callers must read it inside the same transaction as
	// the sub-order write that triggered the derivation.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]*suborder.SubOrder, error)
}
