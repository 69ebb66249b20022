// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"warehouse/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// SubOrderRepoFactory provides access to the sub-order repository within a transaction.
	SubOrderRepoFactory interface {
		SubOrderRepository() ports.SubOrderRepository
	}

	// NumberSequenceFactory provides access to the document number sequence
	// within a transaction, so issued numbers roll back with the documents.
	NumberSequenceFactory interface {
		NumberSequence() ports.NumberSequence
	}

	// StatusUoW manages transactions for status transition and reconciliation
	// operations, which touch orders and sub-orders but never issue numbers.
	StatusUoW interface {
		TxManager
		OrderRepoFactory
		SubOrderRepoFactory
	}

	// StatusUoWFactory creates new status unit of work instances.
	StatusUoWFactory interface {
		Create() StatusUoW
	}

	// UoW manages transactions for the order split: the parent order, its
	// sub-orders, and their document numbers commit or roll back as one.
	UoW interface {
		TxManager
		OrderRepoFactory
		SubOrderRepoFactory
		NumberSequenceFactory
	}

	// UoWFactory creates new unit of work instances for the order split.
	UoWFactory interface {
		Create() UoW
	}
)
