package suborder

import (
	"errors"
	"fmt"

	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrPricingIsNotConstructed = errors.New("suborder Pricing must be created via NewPricing constructor")

// Pricing is a sub-order's share of the parent order's money: its own subtotal
// plus proportionally apportioned tax and delivery charges. The parent's
// discount is not apportioned and therefore does not appear here.
type Pricing struct { //nolint:recvcheck //using for validation
	subtotal        decimal.Decimal
	tax             decimal.Decimal
	deliveryCharges decimal.Decimal
	total           decimal.Decimal
	currency        string

	guard guard.ConstructorGuard
}

// NewPricing creates a sub-order pricing block. All figures must be
// non-negative; the total is computed as subtotal + tax + deliveryCharges.
func NewPricing(subtotal, tax, deliveryCharges decimal.Decimal, currency string) (Pricing, error) {
	pricing := Pricing{
		guard: guard.NewConstructorGuard(),
	}

	for _, amount := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"subtotal", subtotal},
		{"tax", tax},
		{"deliveryCharges", deliveryCharges},
	} {
		if amount.value.IsNegative() {
			return Pricing{}, errs.NewValueIsInvalidErrorWithCause(
				amount.name+" is invalid",
				fmt.Errorf("%s is negative", amount.value),
			)
		}
	}
	if currency == "" {
		return Pricing{}, errs.NewValueIsRequiredError("currency")
	}

	pricing.subtotal = subtotal
	pricing.tax = tax
	pricing.deliveryCharges = deliveryCharges
	pricing.currency = currency
	pricing.total = subtotal.Add(tax).Add(deliveryCharges)
	return pricing, nil
}

// Validate ensures the pricing block was created through NewPricing.
func (p Pricing) Validate() error {
	return p.guard.Validate(ErrPricingIsNotConstructed)
}

// Subtotal returns the sum of this sub-order's item line totals.
func (p Pricing) Subtotal() decimal.Decimal {
	return p.subtotal
}

// Tax returns the apportioned share of the parent order's tax.
func (p Pricing) Tax() decimal.Decimal {
	return p.tax
}

// DeliveryCharges returns the apportioned share of the parent's delivery charges.
func (p Pricing) DeliveryCharges() decimal.Decimal {
	return p.deliveryCharges
}

// Total returns subtotal + tax + deliveryCharges.
func (p Pricing) Total() decimal.Decimal {
	return p.total
}

// Currency returns the ISO currency code, copied from the parent order.
func (p Pricing) Currency() string {
	return p.currency
}
