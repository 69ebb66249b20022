package suborder

import (
	"fmt"

	"warehouse/internal/pkg/errs"
)

// Status represents the lifecycle state of a sub-order within its warehouse.
//
// The happy path is a linear chain:
//
//	pending -> confirmed -> allocated -> picking -> packed ->
//	ready_for_dispatch -> dispatched -> in_transit -> delivered
//
// Cancelled and Returned are side exits reachable from any non-terminal state.
// Delivered, Cancelled, and Returned are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned at materialization.
	Pending

	// Confirmed means the warehouse has accepted the sub-order.
	Confirmed

	// Allocated means stock has been reserved for every item.
	Allocated

	// Picking means warehouse staff are collecting the items.
	Picking

	// Packed means the items are packed and awaiting dispatch.
	Packed

	// ReadyForDispatch means the shipment is staged for carrier pickup.
	ReadyForDispatch

	// Dispatched means the shipment has left the warehouse.
	Dispatched

	// InTransit means the shipment is on its way to the customer.
	InTransit

	// Delivered means the shipment reached the customer. Terminal.
	Delivered

	// Cancelled is a side exit from any non-terminal state. Terminal.
	Cancelled

	// Returned is a side exit from any non-terminal state. Terminal.
	Returned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "unknown",
		Pending:          "pending",
		Confirmed:        "confirmed",
		Allocated:        "allocated",
		Picking:          "picking",
		Packed:           "packed",
		ReadyForDispatch: "ready_for_dispatch",
		Dispatched:       "dispatched",
		InTransit:        "in_transit",
		Delivered:        "delivered",
		Cancelled:        "cancelled",
		Returned:         "returned",
	}
}

// successor maps each chain status to the next one on the happy path.
func successor() map[Status]Status {
	return map[Status]Status{
		Pending:          Confirmed,
		Confirmed:        Allocated,
		Allocated:        Picking,
		Picking:          Packed,
		Packed:           ReadyForDispatch,
		ReadyForDispatch: Dispatched,
		Dispatched:       InTransit,
		InTransit:        Delivered,
	}
}

// StatusFromString parses the wire/persistence representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid sub-order status", s),
	)
}

// Validate checks if the Status value is one of the defined sub-order statuses.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
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

// IsTerminal reports whether the status ends the sub-order lifecycle.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Returned
}

// HasLeftPending reports whether the sub-order has moved past its initial state.
func (s Status) HasLeftPending() bool {
	return s != Pending && s.Validate() == nil
}

// IsDispatchedOrLater reports whether the status belongs to the
// dispatched-or-later set {dispatched, in_transit, delivered} used by the
// parent status derivation.
func (s Status) IsDispatchedOrLater() bool {
	return s == Dispatched || s == InTransit || s == Delivered
}

// CanTransitionTo checks whether a transition to next is allowed without
// performing it. Allowed transitions are the single next step on the happy
// path, or a side exit to Cancelled/Returned from any non-terminal state.
func (s Status) CanTransitionTo(next Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}

	if next == Cancelled || next == Returned {
		if s.IsTerminal() {
			return errs.NewValueIsInvalidErrorWithCause(
				"status is invalid",
				fmt.Errorf("%s is terminal and cannot transition to %s", s, next),
			)
		}
		return nil
	}

	if successor()[s] != next {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s cannot transition to %s", s, next),
		)
	}
	return nil
}

// TransitionTo performs the transition to next, returning the new status.
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := s.CanTransitionTo(next); err != nil {
		return 0, err
	}
	return next, nil
}
