package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. The order split
// (planner, apportioner, materializer) and every sub-order status transition
// with its parent status derivation each run inside a single UnitOfWork, so
// either all writes land or none do.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// SubOrderRepository returns a SubOrderRepository bound to the current transaction.
	SubOrderRepository() SubOrderRepository

	// NumberSequence returns a NumberSequence bound to the current transaction,
	// so issued numbers roll back together with the documents that carry them.
	NumberSequence() NumberSequence
}
