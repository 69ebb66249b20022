package order

import (
	"errors"
	"fmt"

	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrPricingIsNotConstructed = errors.New("Pricing must be created via NewPricing constructor")

// Pricing is the order-level money block. The total is always derived as
// subtotal + tax + deliveryCharges - discount.
//
// The discount lives only here: when an order is split, tax and delivery
// charges are apportioned across sub-orders proportionally, but the discount
// stays on the parent.
type Pricing struct { //nolint:recvcheck //using for validation
	subtotal        decimal.Decimal
	tax             decimal.Decimal
	deliveryCharges decimal.Decimal
	discount        decimal.Decimal
	total           decimal.Decimal
	currency        string

	guard guard.ConstructorGuard
}

// NewPricing creates an order pricing block. All figures must be non-negative
// and the currency code must be present; the total is computed, never passed.
func NewPricing(subtotal, tax, deliveryCharges, discount decimal.Decimal, currency string) (Pricing, error) {
	pricing := Pricing{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		pricing.setAmount("subtotal", &pricing.subtotal, subtotal),
		pricing.setAmount("tax", &pricing.tax, tax),
		pricing.setAmount("deliveryCharges", &pricing.deliveryCharges, deliveryCharges),
		pricing.setAmount("discount", &pricing.discount, discount),
		pricing.setCurrency(currency),
	); err != nil {
		return Pricing{}, err
	}

	pricing.total = pricing.subtotal.Add(pricing.tax).Add(pricing.deliveryCharges).Sub(pricing.discount)
	return pricing, nil
}

// Validate ensures the pricing block was created through NewPricing.
func (p Pricing) Validate() error {
	return p.guard.Validate(ErrPricingIsNotConstructed)
}

// Subtotal returns the sum of all item line totals.
func (p Pricing) Subtotal() decimal.Decimal {
	return p.subtotal
}

// Tax returns the order-level tax amount.
func (p Pricing) Tax() decimal.Decimal {
	return p.tax
}

// DeliveryCharges returns the order-level delivery charges.
func (p Pricing) DeliveryCharges() decimal.Decimal {
	return p.deliveryCharges
}

// Discount returns the order-level discount. It is not apportioned on split.
func (p Pricing) Discount() decimal.Decimal {
	return p.discount
}

// Total returns subtotal + tax + deliveryCharges - discount.
func (p Pricing) Total() decimal.Decimal {
	return p.total
}

// Currency returns the ISO currency code.
func (p Pricing) Currency() string {
	return p.currency
}

func (p *Pricing) setAmount(name string, dst *decimal.Decimal, value decimal.Decimal) error {
	if value.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			name+" is invalid",
			fmt.Errorf("%s is negative", value),
		)
	}
	*dst = value
	return nil
}

func (p *Pricing) setCurrency(currency string) error {
	if currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	p.currency = currency
	return nil
}
