// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. A unit of work brackets one business transaction: the order split
// writes its parent order, sub-orders, and document numbers through one
// instance, and either all of them land or none do.
package postgres

import (
	"context"

	"warehouse/internal/adapters/out/postgres/conflict"
	"warehouse/internal/adapters/out/postgres/orderrepo"
	"warehouse/internal/adapters/out/postgres/suborderrepo"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using a shared GORM
// database connection. Each business operation gets a fresh instance with
// proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction and tracks the aggregates
// written through it. Repositories obtained from an active unit of work are
// bound to its transaction.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Repeated calls on the same instance are no-ops, not nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction. Commit
// errors caused by unique violations or serialization failures are classified
// as persistence conflicts so the caller can retry.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return conflict.Classify("commit", err)
}

// Rollback discards all changes made within the current transaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns an order repository bound to the current transaction
// if one is active, or to the main connection otherwise.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow)
}

// SubOrderRepository returns a sub-order repository bound to the current
// transaction if one is active, or to the main connection otherwise.
func (uow *GormUnitOfWork) SubOrderRepository() ports.SubOrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return suborderrepo.NewGormSubOrderRepository(db, uow)
}

// NumberSequence returns a number sequence bound to the current transaction if
// one is active, so issued numbers roll back with the documents carrying them.
func (uow *GormUnitOfWork) NumberSequence() ports.NumberSequence {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return NewGormNumberSequence(db)
}

// TrackAggregate registers a domain aggregate as modified within this unit of
// work. Repository implementations call it on every add and update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
