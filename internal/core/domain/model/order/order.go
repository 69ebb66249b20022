package order

import (
	"errors"
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder factory method or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the parent aggregate of the fulfillment domain: a customer's
// complete purchase request spanning possibly multiple materials and, after
// the split, multiple warehouses.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a human-readable number
//   - Must carry at least one item
//   - pricing.subtotal equals the sum of all item line totals
//   - Status is never mutated directly; ApplyDerivedStatus is the only writer
//     after creation, fed by the status aggregator
//
// Except for status and its timestamp trail, an Order is immutable after
// construction.
type Order struct {
	id          kernel.UUID
	number      string
	customerRef string
	items       []Item
	pricing     Pricing
	status      Status
	priority    Priority

	// statusTimes records when each status was first reached.
	statusTimes map[Status]time.Time

	isConstructed bool
}

// NewOrder creates a new Order in Processing status.
//
// Parameters:
//   - id: unique identifier (valid UUID)
//   - number: human-readable order number (e.g. "ORD-20250114-0001")
//   - customerRef: reference to the ordering customer
//   - items: enriched order lines (at least one)
//   - pricing: order-level pricing whose subtotal must equal the sum of line totals
//   - priority: fulfillment urgency
//   - createdAt: creation instant, recorded as the Processing timestamp
//
// Returns a validation error if any invariant is violated.
func NewOrder(
	id kernel.UUID,
	number string,
	customerRef string,
	items []Item,
	pricing Pricing,
	priority Priority,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Processing,
		statusTimes:   map[Status]time.Time{Processing: createdAt.UTC()},
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setCustomerRef(customerRef),
		o.setItems(items),
		o.setPricing(pricing),
		o.setPriority(priority),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without re-deriving its
// status. The stored status and timestamp trail are taken as-is after
// validation.
func RestoreOrder(
	id kernel.UUID,
	number string,
	customerRef string,
	items []Item,
	pricing Pricing,
	status Status,
	priority Priority,
	statusTimes map[Status]time.Time,
) (*Order, error) {
	o, err := NewOrder(id, number, customerRef, items, pricing, priority, time.Time{})
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	o.status = status
	o.statusTimes = make(map[Status]time.Time, len(statusTimes))
	for s, at := range statusTimes {
		o.statusTimes[s] = at
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// CustomerRef returns the reference to the ordering customer.
func (o *Order) CustomerRef() string {
	return o.customerRef
}

// Items returns a copy of the ordered line items.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Pricing returns the order-level pricing block.
func (o *Order) Pricing() Pricing {
	return o.pricing
}

// Status returns the current derived status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Priority returns the fulfillment urgency of the order.
func (o *Order) Priority() Priority {
	return o.priority
}

// StatusTimes returns a copy of the status timestamp trail.
func (o *Order) StatusTimes() map[Status]time.Time {
	times := make(map[Status]time.Time, len(o.statusTimes))
	for s, at := range o.statusTimes {
		times[s] = at
	}
	return times
}

// StatusChangedAt returns when the given status was first reached.
func (o *Order) StatusChangedAt(status Status) (time.Time, bool) {
	at, ok := o.statusTimes[status]
	return at, ok
}

// ApplyDerivedStatus records the status computed by the status aggregator.
// It is the only status writer after creation. Applying the current status is
// a no-op; the timestamp is recorded only when the status actually changes.
func (o *Order) ApplyDerivedStatus(status Status, at time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}

	if status == o.status {
		return nil
	}

	o.status = status
	o.statusTimes[status] = at.UTC()
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setCustomerRef(customerRef string) error {
	if customerRef == "" {
		return errs.NewValueIsRequiredError("customerRef")
	}
	o.customerRef = customerRef
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setPricing(pricing Pricing) error {
	if err := pricing.Validate(); err != nil {
		return err
	}

	subtotal := SumLineTotals(o.items)
	if !pricing.Subtotal().Equal(subtotal) {
		return errs.NewValueIsInvalidErrorWithCause(
			"pricing.subtotal is invalid",
			fmt.Errorf("subtotal %s does not equal the sum of line totals %s", pricing.Subtotal(), subtotal),
		)
	}

	o.pricing = pricing
	return nil
}

func (o *Order) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	o.priority = priority
	return nil
}
