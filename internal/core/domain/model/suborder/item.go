package suborder

import (
	"errors"
	"fmt"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrItemIsNotConstructed = errors.New("suborder Item must be created via its constructor")

// Item is an order line assigned to this sub-order's warehouse. It mirrors the
// parent order line and additionally tracks the inventory figures filled in by
// the later allocation/reservation step: availableQuantity (stock seen at
// reservation time) and allocatedQuantity (stock actually reserved). Both
// start at zero when the sub-order is materialized.
type Item struct { //nolint:recvcheck //using for validation
	materialID        kernel.UUID
	name              string
	sku               string
	unit              string
	quantity          int
	unitPrice         decimal.Decimal
	lineTotal         decimal.Decimal
	availableQuantity int
	allocatedQuantity int

	guard guard.ConstructorGuard
}

// NewItemFromOrderItem copies a parent order line into a sub-order line with
// zero available and allocated quantities. Inventory reservation is a later,
// separate step.
func NewItemFromOrderItem(orderItem order.Item) (Item, error) {
	if err := orderItem.Validate(); err != nil {
		return Item{}, err
	}

	return Item{
		materialID: orderItem.MaterialID(),
		name:       orderItem.Name(),
		sku:        orderItem.SKU(),
		unit:       orderItem.Unit(),
		quantity:   orderItem.Quantity(),
		unitPrice:  orderItem.UnitPrice(),
		lineTotal:  orderItem.LineTotal(),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreItem reconstructs a sub-order line from persistence, including the
// inventory figures written by the reservation step.
func RestoreItem(
	materialID kernel.UUID,
	name, sku, unit string,
	quantity int,
	unitPrice decimal.Decimal,
	availableQuantity, allocatedQuantity int,
) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := materialID.Validate(); err != nil {
		return Item{}, err
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	if unitPrice.IsNegative() {
		return Item{}, errs.NewValueIsInvalidErrorWithCause(
			"unitPrice is invalid",
			fmt.Errorf("%s is negative", unitPrice),
		)
	}
	if availableQuantity < 0 || allocatedQuantity < 0 {
		return Item{}, errs.NewValueIsInvalidError("inventory quantities must not be negative")
	}

	item.materialID = materialID
	item.name = name
	item.sku = sku
	item.unit = unit
	item.quantity = quantity
	item.unitPrice = unitPrice
	item.lineTotal = unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	item.availableQuantity = availableQuantity
	item.allocatedQuantity = allocatedQuantity
	return item, nil
}

// Validate ensures the item was created through a constructor.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// MaterialID returns the catalog reference of the line's material.
func (i Item) MaterialID() kernel.UUID {
	return i.materialID
}

// Name returns the canonical material name.
func (i Item) Name() string {
	return i.name
}

// SKU returns the material's stock keeping unit.
func (i Item) SKU() string {
	return i.sku
}

// Unit returns the material's unit of measure.
func (i Item) Unit() string {
	return i.unit
}

// Quantity returns the quantity assigned to this warehouse.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price per unit, copied from the parent line.
func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// LineTotal returns unitPrice * quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.lineTotal
}

// AvailableQuantity returns the stock observed at reservation time.
// Zero until the reservation step runs.
func (i Item) AvailableQuantity() int {
	return i.availableQuantity
}

// AllocatedQuantity returns the stock actually reserved for this line.
// Zero until the reservation step runs.
func (i Item) AllocatedQuantity() int {
	return i.allocatedQuantity
}

// sumLineTotals adds up the line totals of the given items.
func sumLineTotals(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
