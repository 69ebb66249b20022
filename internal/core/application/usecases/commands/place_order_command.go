package commands

import (
	"errors"
	"fmt"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrCustomerRefIsRequired = errors.New("customerRef is required")
	ErrOrderLinesAreRequired = errors.New("at least one order line is required")
)

// PlaceOrderLine is one requested line of an order draft: a material reference,
// the quantity wanted, and an optional negotiated unit price. When UnitPrice is
// nil the catalog list price applies.
type PlaceOrderLine struct {
	MaterialID kernel.UUID
	Quantity   int
	UnitPrice  *decimal.Decimal
}

// PlaceOrderCommand represents a request to place a new order and split it
// into per-warehouse sub-orders.
//
// The subtotal is never part of the command: it is derived from the enriched
// lines during handling. Tax, delivery charges, and discount are order-level
// figures supplied by the caller.
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerRef     string
	lines           []PlaceOrderLine
	tax             decimal.Decimal
	deliveryCharges decimal.Decimal
	discount        decimal.Decimal
	currency        string
	priority        order.Priority

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order.
// Validates the order ID, customer reference, lines, money figures, currency,
// and priority. Returns an error if any validation fails.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	customerRef string,
	lines []PlaceOrderLine,
	tax, deliveryCharges, discount decimal.Decimal,
	currency string,
	priority order.Priority,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerRef(customerRef),
		cmd.setLines(lines),
		cmd.setAmount("tax", &cmd.tax, tax),
		cmd.setAmount("deliveryCharges", &cmd.deliveryCharges, deliveryCharges),
		cmd.setAmount("discount", &cmd.discount, discount),
		cmd.setCurrency(currency),
		cmd.setPriority(priority),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPlaceOrderCommandIsNotConstructed if validation fails.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerRef returns the reference to the ordering customer.
func (c PlaceOrderCommand) CustomerRef() string {
	return c.customerRef
}

// Lines returns a copy of the requested order lines.
func (c PlaceOrderCommand) Lines() []PlaceOrderLine {
	lines := make([]PlaceOrderLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Tax returns the order-level tax amount.
func (c PlaceOrderCommand) Tax() decimal.Decimal {
	return c.tax
}

// DeliveryCharges returns the order-level delivery charges.
func (c PlaceOrderCommand) DeliveryCharges() decimal.Decimal {
	return c.deliveryCharges
}

// Discount returns the order-level discount.
func (c PlaceOrderCommand) Discount() decimal.Decimal {
	return c.discount
}

// Currency returns the ISO currency code.
func (c PlaceOrderCommand) Currency() string {
	return c.currency
}

// Priority returns the fulfillment urgency of the order.
func (c PlaceOrderCommand) Priority() order.Priority {
	return c.priority
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setCustomerRef(customerRef string) error {
	if customerRef == "" {
		return ErrCustomerRefIsRequired
	}

	c.customerRef = customerRef
	return nil
}

func (c *PlaceOrderCommand) setLines(lines []PlaceOrderLine) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}

	for i, line := range lines {
		if err := line.MaterialID.Validate(); err != nil {
			return err
		}
		if line.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("lines[%d].quantity is invalid", i),
				fmt.Errorf("%d is not greater than 0", line.Quantity),
			)
		}
		if line.UnitPrice != nil && line.UnitPrice.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("lines[%d].unitPrice is invalid", i),
				fmt.Errorf("%s is negative", line.UnitPrice),
			)
		}
	}

	c.lines = make([]PlaceOrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}

func (c *PlaceOrderCommand) setAmount(name string, dst *decimal.Decimal, value decimal.Decimal) error {
	if value.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			name+" is invalid",
			fmt.Errorf("%s is negative", value),
		)
	}

	*dst = value
	return nil
}

func (c *PlaceOrderCommand) setCurrency(currency string) error {
	if currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}

	c.currency = currency
	return nil
}

func (c *PlaceOrderCommand) setPriority(priority order.Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}

	c.priority = priority
	return nil
}
