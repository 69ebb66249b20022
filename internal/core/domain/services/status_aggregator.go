package services

import (
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/suborder"
)

// StatusAggregator derives a parent order's status from the statuses of its
// sub-orders. It is a pure function of the sibling set and must be evaluated
// inside the same transaction as the sub-order write that triggered it, so
// the parent never observes a stale sibling snapshot.
type StatusAggregator struct{}

// NewStatusAggregator creates a new StatusAggregator instance.
func NewStatusAggregator() StatusAggregator {
	return StatusAggregator{}
}

// Derive classifies the sibling statuses into exactly one parent status:
//
//	all delivered                                    -> Completed
//	all dispatched/in_transit/delivered              -> FullyDispatched
//	some in that set, and none still pending         -> PartiallyDispatched
//	all have left pending                            -> FullyScheduled
//	some have left pending                           -> PartiallyScheduled
//	otherwise                                        -> Processing
//
// A sibling still sitting in pending keeps the order out of the dispatched
// classifications: one dispatched and one pending sub-order yield
// PartiallyScheduled, not PartiallyDispatched.
//
// The clauses cascade top-down, so the result is total: every combination of
// sibling statuses maps to one of the six parent statuses. An empty sibling
// set yields Processing.
func (StatusAggregator) Derive(statuses []suborder.Status) order.Status {
	if len(statuses) == 0 {
		return order.Processing
	}

	var (
		delivered      int
		dispatchedPlus int
		leftPending    int
	)

	for _, s := range statuses {
		if s == suborder.Delivered {
			delivered++
		}
		if s.IsDispatchedOrLater() {
			dispatchedPlus++
		}
		if s.HasLeftPending() {
			leftPending++
		}
	}

	total := len(statuses)

	switch {
	case delivered == total:
		return order.Completed
	case dispatchedPlus == total:
		return order.FullyDispatched
	case dispatchedPlus > 0 && leftPending == total:
		return order.PartiallyDispatched
	case leftPending == total:
		return order.FullyScheduled
	case leftPending > 0:
		return order.PartiallyScheduled
	default:
		return order.Processing
	}
}
