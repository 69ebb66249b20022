package order

import (
	"fmt"

	"warehouse/internal/pkg/errs"
)

// Status represents the aggregate lifecycle state of an order.
//
// Unlike most state machines, Status has no transition methods of its own:
// after creation the parent status is a pure function of the statuses of the
// order's sub-orders, recomputed by the status aggregator on every sub-order
// transition. The values form a progression from Processing (nothing has moved
// yet) to Completed (every sub-order delivered).
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Processing is the initial status: sub-orders exist but none has left pending.
	Processing

	// PartiallyScheduled means some (not all) sub-orders have left pending.
	PartiallyScheduled

	// FullyScheduled means every sub-order has left pending.
	FullyScheduled

	// PartiallyDispatched means some (not all) sub-orders are dispatched or later.
	PartiallyDispatched

	// FullyDispatched means every sub-order is dispatched, in transit, or delivered.
	FullyDispatched

	// Completed means every sub-order has been delivered. Final state.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:             "unknown",
		Processing:          "processing",
		PartiallyScheduled:  "partially_scheduled",
		FullyScheduled:      "fully_scheduled",
		PartiallyDispatched: "partially_dispatched",
		FullyDispatched:     "fully_dispatched",
		Completed:           "completed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Processing:          "processing",
		PartiallyScheduled:  "partially_scheduled",
		FullyScheduled:      "fully_scheduled",
		PartiallyDispatched: "partially_dispatched",
		FullyDispatched:     "fully_dispatched",
		Completed:           "completed",
	}
}

// StatusFromString parses the wire/persistence representation of a status.
// Returns an error for unrecognized values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid order status", s),
	)
}

// Validate checks if the Status value is one of the defined order statuses.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the snake_case name of the status.
// Implements fmt.Stringer; safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsFinal reports whether the status terminates the order lifecycle.
func (s Status) IsFinal() bool {
	return s == Completed
}
