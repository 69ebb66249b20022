package order

import (
	"errors"
	"fmt"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a single line of an order: a material, the quantity ordered, and
// the pricing resolved for it. The line total is always derived as
// unitPrice * quantity and never set directly.
//
// Items are value objects; once an order is created its items never change.
type Item struct { //nolint:recvcheck //using for validation
	materialID kernel.UUID
	name       string
	sku        string
	unit       string
	quantity   int
	unitPrice  decimal.Decimal
	lineTotal  decimal.Decimal

	guard guard.ConstructorGuard
}

// NewItem creates an order line for the given material.
// The material descriptor fields (name, sku, unit) come from the catalog
// lookup; quantity must be positive and unitPrice non-negative.
func NewItem(
	materialID kernel.UUID,
	name, sku, unit string,
	quantity int,
	unitPrice decimal.Decimal,
) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setMaterialID(materialID),
		item.setDescriptor(name, sku, unit),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	item.lineTotal = item.unitPrice.Mul(decimal.NewFromInt(int64(item.quantity)))
	return item, nil
}

// Validate ensures the item was created through NewItem.
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

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price per unit.
func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// LineTotal returns unitPrice * quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.lineTotal
}

func (i *Item) setMaterialID(materialID kernel.UUID) error {
	if err := materialID.Validate(); err != nil {
		return err
	}
	i.materialID = materialID
	return nil
}

func (i *Item) setDescriptor(name, sku, unit string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	if sku == "" {
		return errs.NewValueIsRequiredError("item sku")
	}
	i.name = name
	i.sku = sku
	i.unit = unit
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"unitPrice is invalid",
			fmt.Errorf("%s is negative", unitPrice),
		)
	}
	i.unitPrice = unitPrice
	return nil
}
