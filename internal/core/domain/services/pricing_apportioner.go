package services

import (
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/suborder"

	"github.com/shopspring/decimal"
)

// PricingApportioner distributes order-level tax and delivery charges across
// warehouse groups proportionally to each group's share of the order subtotal.
//
// The discount is not apportioned: it stays on the parent order and no share
// of it reaches any sub-order.
type PricingApportioner struct{}

// NewPricingApportioner creates a new PricingApportioner instance.
func NewPricingApportioner() PricingApportioner {
	return PricingApportioner{}
}

// Apportion computes the pricing block for each warehouse group, in group
// order:
//
//	groupSubtotal = sum of the group's item line totals
//	groupTax      = (groupSubtotal / orderSubtotal) * orderTax
//	groupDelivery = (groupSubtotal / orderSubtotal) * orderDeliveryCharges
//	groupTotal    = groupSubtotal + groupTax + groupDelivery
//
// A zero order subtotal yields zero tax and delivery shares for every group.
// Group subtotals sum exactly to the order subtotal; tax and delivery shares
// sum to the order's figures up to decimal division precision.
func (PricingApportioner) Apportion(
	orderPricing order.Pricing,
	groups []WarehouseGroup,
) ([]suborder.Pricing, error) {
	if err := orderPricing.Validate(); err != nil {
		return nil, err
	}

	orderSubtotal := orderPricing.Subtotal()
	pricings := make([]suborder.Pricing, 0, len(groups))

	for _, group := range groups {
		groupSubtotal := decimal.Zero
		for _, item := range group.Items {
			groupSubtotal = groupSubtotal.Add(item.LineTotal())
		}

		groupTax := decimal.Zero
		groupDelivery := decimal.Zero
		if !orderSubtotal.IsZero() {
			ratio := groupSubtotal.Div(orderSubtotal)
			groupTax = ratio.Mul(orderPricing.Tax())
			groupDelivery = ratio.Mul(orderPricing.DeliveryCharges())
		}

		pricing, err := suborder.NewPricing(groupSubtotal, groupTax, groupDelivery, orderPricing.Currency())
		if err != nil {
			return nil, err
		}
		pricings = append(pricings, pricing)
	}

	return pricings, nil
}
