package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/suborder"
	"warehouse/internal/core/domain/services"
)

// ReconcileOrderStatusesCommandHandler re-derives the status of every
// uncompleted order from its sub-orders and persists the ones that drifted.
type ReconcileOrderStatusesCommandHandler struct {
	uowFactory StatusUoWFactory
}

// NewReconcileOrderStatusesCommandHandler creates a handler for the
// reconciliation sweep. Requires a StatusUoWFactory for transactional persistence.
func NewReconcileOrderStatusesCommandHandler(uowFactory StatusUoWFactory) ReconcileOrderStatusesCommandHandler {
	return ReconcileOrderStatusesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reconciliation command. The whole sweep runs in a
// single transaction; orders whose derived status matches the stored one are
// not written.
func (h ReconcileOrderStatusesCommandHandler) Handle(ctx context.Context, cmd ReconcileOrderStatusesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	subOrderRepo := uow.SubOrderRepository()

	orders, err := orderRepo.GetAllUncompleted(ctx)
	if err != nil {
		return err
	}

	aggregator := services.NewStatusAggregator()
	now := time.Now().UTC()

	for _, o := range orders {
		siblings, sErr := subOrderRepo.GetByOrderID(ctx, o.ID())
		if sErr != nil {
			return sErr
		}

		statuses := make([]suborder.Status, 0, len(siblings))
		for _, sibling := range siblings {
			statuses = append(statuses, sibling.Status())
		}

		derived := aggregator.Derive(statuses)
		if derived == o.Status() {
			continue
		}

		if err = o.ApplyDerivedStatus(derived, now); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
