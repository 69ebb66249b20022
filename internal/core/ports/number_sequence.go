package ports

import (
	"context"
	"time"
)

// Sequence scopes for human-readable document numbers.
const (
	SequenceScopeOrders    = "orders"
	SequenceScopeSubOrders = "suborders"
)

// NumberSequence issues per-day monotonically increasing sequence values for
// human-readable document numbers. Implementations must make Next atomic so
// that concurrent order creation can never observe the same value for one
// (scope, day) pair.
type NumberSequence interface {
	// Next returns the next sequence value for the scope on the given day,
	// starting at 1 for the first call of a day.
	Next(ctx context.Context, scope string, day time.Time) (int, error)
}
