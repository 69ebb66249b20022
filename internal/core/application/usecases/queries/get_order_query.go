// Package queries contains read-side use cases. Query handlers bypass the
// domain model and repositories, reading projection-shaped responses straight
// from the database.
package queries

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves one order with its pricing, line items, and the
// summaries of the sub-orders it was split into.
type GetOrderQuery struct {
	guard guard.ConstructorGuard

	orderID kernel.UUID
}

// NewGetOrderQuery creates a query for the order with the given ID.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	return GetOrderQuery{
		guard:   guard.NewConstructorGuard(),
		orderID: orderID,
	}, nil
}

// OrderID returns the identifier of the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// GetOrderQueryResponse is the read model for one order.
type GetOrderQueryResponse struct {
	ID          kernel.UUID
	Number      string
	CustomerRef string
	Status      string
	Priority    string

	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	DeliveryCharges decimal.Decimal
	Discount        decimal.Decimal
	Total           decimal.Decimal
	Currency        string

	CreatedAt time.Time

	Items     []OrderItemResponse
	SubOrders []SubOrderSummaryResponse
}

// OrderItemResponse is one line of the parent order.
type OrderItemResponse struct {
	MaterialID kernel.UUID
	Name       string
	SKU        string
	Unit       string
	Quantity   int
	UnitPrice  decimal.Decimal
	LineTotal  decimal.Decimal
}

// SubOrderSummaryResponse is the condensed view of one sub-order shown
// alongside its parent.
type SubOrderSummaryResponse struct {
	ID            kernel.UUID
	Number        string
	WarehouseName string
	Status        string
	Total         decimal.Decimal
	Currency      string
}
