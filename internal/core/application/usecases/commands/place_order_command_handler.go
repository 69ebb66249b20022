package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/suborder"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
)

// PlaceOrderCommandHandler handles the business logic for placing an order:
// it enriches the requested lines from the catalog, partitions them into
// warehouse groups, apportions the order-level money across the groups, and
// materializes the parent order with one sub-order per group.
//
// The whole split is one unit of work. If any sub-order cannot be written,
// everything including the parent order and the issued document numbers rolls
// back, so a half-split order is never observable.
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	planner    services.AllocationPlanner
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// Requires a UoWFactory for transactional persistence and an AllocationPlanner
// wired to the catalog and the stock index.
func NewPlaceOrderCommandHandler(
	uowFactory UoWFactory,
	planner services.AllocationPlanner,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
	}
}

// Handle processes the order placement command.
//
// Planning and apportionment run before the transaction opens: they only read
// the catalog and the advisory stock snapshot. The transaction covers number
// issuance and all writes.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	lines := make([]services.DraftLine, 0, len(cmd.Lines()))
	for _, line := range cmd.Lines() {
		lines = append(lines, services.DraftLine{
			MaterialID: line.MaterialID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
		})
	}

	items, groups, err := h.planner.Plan(ctx, lines)
	if err != nil {
		return err
	}

	subtotal := order.SumLineTotals(items)
	orderPricing, err := order.NewPricing(
		subtotal, cmd.Tax(), cmd.DeliveryCharges(), cmd.Discount(), cmd.Currency(),
	)
	if err != nil {
		return err
	}

	groupPricings, err := services.NewPricingApportioner().Apportion(orderPricing, groups)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	sequence := uow.NumberSequence()

	orderSeq, err := sequence.Next(ctx, ports.SequenceScopeOrders, now)
	if err != nil {
		return err
	}
	orderNumber := order.FormatNumber(now, orderSeq)

	newOrder, err := order.NewOrder(
		cmd.OrderID(), orderNumber, cmd.CustomerRef(), items, orderPricing, cmd.Priority(), now,
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	subOrderRepo := uow.SubOrderRepository()
	for i, group := range groups {
		subOrderSeq, seqErr := sequence.Next(ctx, ports.SequenceScopeSubOrders, now)
		if seqErr != nil {
			return seqErr
		}

		subItems := make([]suborder.Item, 0, len(group.Items))
		for _, item := range group.Items {
			subItem, itemErr := suborder.NewItemFromOrderItem(item)
			if itemErr != nil {
				return itemErr
			}
			subItems = append(subItems, subItem)
		}

		subOrder, soErr := suborder.NewSubOrder(
			kernel.NewUUID(),
			suborder.FormatNumber(now, subOrderSeq),
			newOrder.ID(),
			newOrder.Number(),
			group.Warehouse,
			subItems,
			groupPricings[i],
			now,
		)
		if soErr != nil {
			return soErr
		}

		if err = subOrderRepo.Add(ctx, subOrder); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
