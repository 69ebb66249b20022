package suborder

import (
	"errors"
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/warehouse"
	"warehouse/internal/pkg/errs"
)

var (
	// ErrSubOrderIsNotConstructed is returned when a SubOrder instance was not
	// created through NewSubOrder or RestoreSubOrder.
	ErrSubOrderIsNotConstructed = errors.New("SubOrder must be created via NewSubOrder constructor")
)

// NumberPrefix is the fixed prefix of human-readable sub-order numbers.
const NumberPrefix = "SO"

// FormatNumber renders a human-readable sub-order number from the creation day
// and the per-day sequence value, e.g. "SO-20250114-0003". Sequence values are
// issued by an atomic per-day counter in the persistence layer, so numbers are
// unique and monotonically increasing within a day even under concurrent
// order creation.
func FormatNumber(day time.Time, sequence int) string {
	return fmt.Sprintf("%s-%s-%04d", NumberPrefix, day.UTC().Format("20060102"), sequence)
}

// SubOrder is a warehouse-scoped fulfillment unit derived from splitting a
// parent order. It owns its status lifecycle; the parent's status is derived
// from the statuses of all siblings.
//
// SubOrder follows these invariants:
//   - Must reference a valid parent order (id and number)
//   - Must be assigned to exactly one warehouse
//   - Must carry at least one item
//   - pricing.subtotal equals the sum of its item line totals
//   - Status transitions follow the chain defined on Status
type SubOrder struct {
	id          kernel.UUID
	number      string
	orderID     kernel.UUID
	orderNumber string
	warehouse   warehouse.Warehouse
	items       []Item
	pricing     Pricing
	status      Status

	// statusTimes records when each status was first reached.
	statusTimes map[Status]time.Time

	isConstructed bool
}

// NewSubOrder creates a sub-order in Pending status.
//
// Parameters:
//   - id: unique identifier
//   - number: generated human-readable number (e.g. "SO-20250114-0003")
//   - orderID, orderNumber: back-reference to the parent order
//   - wh: the warehouse this unit is assigned to
//   - items: the parent lines allocated to this warehouse (at least one)
//   - pricing: the apportioned pricing block, whose subtotal must equal the
//     sum of item line totals
//   - createdAt: creation instant, recorded as the Pending timestamp
func NewSubOrder(
	id kernel.UUID,
	number string,
	orderID kernel.UUID,
	orderNumber string,
	wh warehouse.Warehouse,
	items []Item,
	pricing Pricing,
	createdAt time.Time,
) (*SubOrder, error) {
	so := &SubOrder{
		status:        Pending,
		statusTimes:   map[Status]time.Time{Pending: createdAt.UTC()},
		isConstructed: true,
	}

	if err := errors.Join(
		so.setID(id),
		so.setNumber(number),
		so.setParent(orderID, orderNumber),
		so.setWarehouse(wh),
		so.setItems(items),
		so.setPricing(pricing),
	); err != nil {
		return nil, err
	}

	return so, nil
}

// RestoreSubOrder reconstructs a SubOrder from persistence with its stored
// status and timestamp trail.
func RestoreSubOrder(
	id kernel.UUID,
	number string,
	orderID kernel.UUID,
	orderNumber string,
	wh warehouse.Warehouse,
	items []Item,
	pricing Pricing,
	status Status,
	statusTimes map[Status]time.Time,
) (*SubOrder, error) {
	so, err := NewSubOrder(id, number, orderID, orderNumber, wh, items, pricing, time.Time{})
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	so.status = status
	so.statusTimes = make(map[Status]time.Time, len(statusTimes))
	for s, at := range statusTimes {
		so.statusTimes[s] = at
	}

	return so, nil
}

// Validate ensures the SubOrder instance was properly constructed.
func (so *SubOrder) Validate() error {
	if so == nil || !so.isConstructed {
		return ErrSubOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two sub-orders by their unique identifiers.
func (so *SubOrder) IsEqual(other *SubOrder) bool {
	return other != nil && so.id.IsEqual(other.id)
}

// ID returns the sub-order's unique identifier.
func (so *SubOrder) ID() kernel.UUID {
	return so.id
}

// Number returns the human-readable sub-order number.
func (so *SubOrder) Number() string {
	return so.number
}

// OrderID returns the parent order's identifier.
func (so *SubOrder) OrderID() kernel.UUID {
	return so.orderID
}

// OrderNumber returns the parent order's human-readable number.
func (so *SubOrder) OrderNumber() string {
	return so.orderNumber
}

// Warehouse returns the warehouse this unit is assigned to.
func (so *SubOrder) Warehouse() warehouse.Warehouse {
	return so.warehouse
}

// Items returns a copy of the allocated line items.
func (so *SubOrder) Items() []Item {
	items := make([]Item, len(so.items))
	copy(items, so.items)
	return items
}

// Pricing returns the apportioned pricing block.
func (so *SubOrder) Pricing() Pricing {
	return so.pricing
}

// Status returns the current status of the sub-order.
func (so *SubOrder) Status() Status {
	return so.status
}

// StatusTimes returns a copy of the status timestamp trail.
func (so *SubOrder) StatusTimes() map[Status]time.Time {
	times := make(map[Status]time.Time, len(so.statusTimes))
	for s, at := range so.statusTimes {
		times[s] = at
	}
	return times
}

// StatusChangedAt returns when the given status was first reached.
func (so *SubOrder) StatusChangedAt(status Status) (time.Time, bool) {
	at, ok := so.statusTimes[status]
	return at, ok
}

// TransitionTo moves the sub-order to the next status, enforcing the state
// machine defined on Status, and records the transition timestamp.
func (so *SubOrder) TransitionTo(next Status, at time.Time) error {
	newStatus, err := so.status.TransitionTo(next)
	if err != nil {
		return err
	}

	so.status = newStatus
	so.statusTimes[newStatus] = at.UTC()
	return nil
}

func (so *SubOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	so.id = id
	return nil
}

func (so *SubOrder) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("sub-order number")
	}
	so.number = number
	return nil
}

func (so *SubOrder) setParent(orderID kernel.UUID, orderNumber string) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	so.orderID = orderID
	so.orderNumber = orderNumber
	return nil
}

func (so *SubOrder) setWarehouse(wh warehouse.Warehouse) error {
	if err := wh.Validate(); err != nil {
		return err
	}
	so.warehouse = wh
	return nil
}

func (so *SubOrder) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("sub-order items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	so.items = make([]Item, len(items))
	copy(so.items, items)
	return nil
}

func (so *SubOrder) setPricing(pricing Pricing) error {
	if err := pricing.Validate(); err != nil {
		return err
	}

	subtotal := sumLineTotals(so.items)
	if !pricing.Subtotal().Equal(subtotal) {
		return errs.NewValueIsInvalidErrorWithCause(
			"pricing.subtotal is invalid",
			fmt.Errorf("subtotal %s does not equal the sum of line totals %s", pricing.Subtotal(), subtotal),
		)
	}

	so.pricing = pricing
	return nil
}
