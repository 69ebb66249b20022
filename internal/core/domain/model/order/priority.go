package order

import (
	"fmt"

	"warehouse/internal/pkg/errs"
)

// Priority expresses fulfillment urgency for an order. It does not influence
// allocation; warehouse operations use it to sequence their work.
type Priority int

const (
	// PriorityUnknown represents an invalid or undefined priority.
	PriorityUnknown Priority = iota

	PriorityLow
	PriorityNormal
	PriorityHigh
	PriorityUrgent
)

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityLow:    "low",
		PriorityNormal: "normal",
		PriorityHigh:   "high",
		PriorityUrgent: "urgent",
	}
}

// PriorityFromString parses the wire/persistence representation of a priority.
func PriorityFromString(s string) (Priority, error) {
	for priority, str := range getPriorityStrings() {
		if str == s {
			return priority, nil
		}
	}
	return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause(
		"priority is invalid",
		fmt.Errorf("%q is not a valid priority", s),
	)
}

// Validate checks if the Priority value is one of the defined priorities.
func (p Priority) Validate() error {
	if _, ok := getPriorityStrings()[p]; !ok {
		return errs.NewValueIsOutOfRangeError("priority", int(p), int(PriorityLow), int(PriorityUrgent))
	}
	return nil
}

// String returns the lowercase name of the priority.
func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "unknown"
}
