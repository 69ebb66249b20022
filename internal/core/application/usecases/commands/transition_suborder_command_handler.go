package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/suborder"
	"warehouse/internal/core/domain/services"
)

// TransitionSubOrderCommandHandler moves a sub-order along its lifecycle and
// cascades the change to the parent order. The sub-order write, the sibling
// read, and the parent update share one transaction, so the parent status
// always reflects a consistent sibling snapshot.
type TransitionSubOrderCommandHandler struct {
	uowFactory StatusUoWFactory
}

// NewTransitionSubOrderCommandHandler creates a handler for sub-order status
// transitions. Requires a StatusUoWFactory for transactional persistence.
func NewTransitionSubOrderCommandHandler(uowFactory StatusUoWFactory) TransitionSubOrderCommandHandler {
	return TransitionSubOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the transition command.
// Illegal transitions are rejected by the sub-order's state machine and leave
// both the sub-order and the parent order untouched.
func (h TransitionSubOrderCommandHandler) Handle(ctx context.Context, cmd TransitionSubOrderCommand) error {
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

	subOrderRepo := uow.SubOrderRepository()
	orderRepo := uow.OrderRepository()

	subOrder, err := subOrderRepo.Get(ctx, cmd.SubOrderID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = subOrder.TransitionTo(cmd.Next(), now); err != nil {
		return err
	}

	if err = subOrderRepo.Update(ctx, subOrder); err != nil {
		return err
	}

	siblings, err := subOrderRepo.GetByOrderID(ctx, subOrder.OrderID())
	if err != nil {
		return err
	}

	statuses := make([]suborder.Status, 0, len(siblings))
	for _, sibling := range siblings {
		statuses = append(statuses, sibling.Status())
	}

	derived := services.NewStatusAggregator().Derive(statuses)

	parent, err := orderRepo.Get(ctx, subOrder.OrderID())
	if err != nil {
		return err
	}

	if derived != parent.Status() {
		if err = parent.ApplyDerivedStatus(derived, now); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, parent); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
