package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/suborder"
	"warehouse/internal/pkg/guard"
)

var ErrTransitionSubOrderCommandIsNotConstructed = errors.New(
	"TransitionSubOrderCommand must be created via NewTransitionSubOrderCommand constructor",
)

// TransitionSubOrderCommand represents a request to move a sub-order to its
// next lifecycle status. The parent order's status is re-derived from the full
// sibling set in the same transaction.
type TransitionSubOrderCommand struct { //nolint:recvcheck //using for validation
	subOrderID kernel.UUID
	next       suborder.Status

	guard guard.ConstructorGuard
}

// NewTransitionSubOrderCommand creates a command to transition a sub-order.
// Validates that the sub-order ID is valid and the target status is a defined
// status. Whether the transition itself is legal is decided by the sub-order's
// state machine during handling.
func NewTransitionSubOrderCommand(subOrderID kernel.UUID, next suborder.Status) (TransitionSubOrderCommand, error) {
	cmd := TransitionSubOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSubOrderID(subOrderID),
		cmd.setNext(next),
	); err != nil {
		return TransitionSubOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrTransitionSubOrderCommandIsNotConstructed if validation fails.
func (c TransitionSubOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionSubOrderCommandIsNotConstructed)
}

// SubOrderID returns the identifier of the sub-order to transition.
func (c TransitionSubOrderCommand) SubOrderID() kernel.UUID {
	return c.subOrderID
}

// Next returns the target status.
func (c TransitionSubOrderCommand) Next() suborder.Status {
	return c.next
}

func (c *TransitionSubOrderCommand) setSubOrderID(subOrderID kernel.UUID) error {
	if err := subOrderID.Validate(); err != nil {
		return err
	}

	c.subOrderID = subOrderID
	return nil
}

func (c *TransitionSubOrderCommand) setNext(next suborder.Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	c.next = next
	return nil
}
