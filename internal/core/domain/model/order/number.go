package order

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// NumberPrefix is the fixed prefix of human-readable order numbers.
const NumberPrefix = "ORD"

// FormatNumber renders a human-readable order number from the creation day and
// the per-day sequence value, e.g. "ORD-20250114-0007". Sequence values are
// issued by an atomic per-day counter in the persistence layer, so numbers are
// unique and monotonically increasing within a day.
func FormatNumber(day time.Time, sequence int) string {
	return fmt.Sprintf("%s-%s-%04d", NumberPrefix, day.UTC().Format("20060102"), sequence)
}

// SumLineTotals adds up the line totals of the given items. The result is the
// subtotal an order's pricing block must carry.
func SumLineTotals(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
