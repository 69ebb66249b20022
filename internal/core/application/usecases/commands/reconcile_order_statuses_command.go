package commands

import (
	"errors"

	"warehouse/internal/pkg/guard"
)

var ErrReconcileOrderStatusesCommandIsNotConstructed = errors.New(
	"ReconcileOrderStatusesCommand must be created via NewReconcileOrderStatusesCommand constructor",
)

// ReconcileOrderStatusesCommand triggers a sweep over all uncompleted orders,
// re-deriving each parent status from its sub-orders. The sweep is a safety
// net: transitions cascade to the parent synchronously, so the sweep only
// repairs drift (missed cascades, manual data fixes).
type ReconcileOrderStatusesCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcileOrderStatusesCommand creates a new command to trigger the
// reconciliation sweep. This is a parameterless command.
func NewReconcileOrderStatusesCommand() ReconcileOrderStatusesCommand {
	return ReconcileOrderStatusesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrReconcileOrderStatusesCommandIsNotConstructed if validation fails.
func (c *ReconcileOrderStatusesCommand) Validate() error {
	return c.guard.Validate(
		ErrReconcileOrderStatusesCommandIsNotConstructed,
	)
}
