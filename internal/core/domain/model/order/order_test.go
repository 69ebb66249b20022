package order_test

import (
	"testing"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, name string, quantity int, unitPrice string) order.Item {
	t.Helper()
	item, err := order.NewItem(
		kernel.NewUUID(), name, "SKU-"+name, "pcs",
		quantity, decimal.RequireFromString(unitPrice),
	)
	require.NoError(t, err)
	return item
}

func mustPricing(t *testing.T, subtotal, tax, delivery, discount string) order.Pricing {
	t.Helper()
	pricing, err := order.NewPricing(
		decimal.RequireFromString(subtotal),
		decimal.RequireFromString(tax),
		decimal.RequireFromString(delivery),
		decimal.RequireFromString(discount),
		"USD",
	)
	require.NoError(t, err)
	return pricing
}

func TestNewItem(t *testing.T) {
	t.Run("derives_line_total", func(t *testing.T) {
		item := mustItem(t, "steel-rod", 10, "25.50")

		assert.Equal(t, 10, item.Quantity())
		assert.True(t, item.LineTotal().Equal(decimal.RequireFromString("255.00")),
			"got %s", item.LineTotal())
		require.NoError(t, item.Validate())
	})

	t.Run("rejects_non_positive_quantity", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), "cement", "SKU-1", "bag", 0, decimal.NewFromInt(5))
		require.Error(t, err)
	})

	t.Run("rejects_negative_unit_price", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), "cement", "SKU-1", "bag", 1, decimal.NewFromInt(-5))
		require.Error(t, err)
	})

	t.Run("requires_name_and_sku", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), "", "SKU-1", "bag", 1, decimal.NewFromInt(5))
		require.Error(t, err)

		_, err = order.NewItem(kernel.NewUUID(), "cement", "", "bag", 1, decimal.NewFromInt(5))
		require.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var item order.Item
		require.ErrorIs(t, item.Validate(), order.ErrItemIsNotConstructed)
	})
}

func TestNewPricing(t *testing.T) {
	t.Run("derives_total", func(t *testing.T) {
		pricing := mustPricing(t, "100.00", "18.00", "12.00", "5.00")

		assert.True(t, pricing.Total().Equal(decimal.RequireFromString("125.00")),
			"got %s", pricing.Total())
		assert.Equal(t, "USD", pricing.Currency())
	})

	t.Run("rejects_negative_amounts", func(t *testing.T) {
		_, err := order.NewPricing(
			decimal.NewFromInt(-1), decimal.Zero, decimal.Zero, decimal.Zero, "USD")
		require.Error(t, err)
	})

	t.Run("requires_currency", func(t *testing.T) {
		_, err := order.NewPricing(decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, "")
		require.Error(t, err)
	})
}

func TestNewOrder(t *testing.T) {
	now := time.Date(2025, 1, 14, 10, 30, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		items := []order.Item{
			mustItem(t, "steel-rod", 10, "25.50"),
			mustItem(t, "cement", 50, "8.00"),
		}
		pricing := mustPricing(t, "655.00", "65.50", "20.00", "0")

		o, err := order.NewOrder(
			kernel.NewUUID(), "ORD-20250114-0001", "customer-42",
			items, pricing, order.PriorityNormal, now,
		)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Processing, o.Status())
		assert.Len(t, o.Items(), 2)

		at, ok := o.StatusChangedAt(order.Processing)
		require.True(t, ok)
		assert.Equal(t, now, at)
	})

	t.Run("rejects_subtotal_mismatch", func(t *testing.T) {
		items := []order.Item{mustItem(t, "steel-rod", 10, "25.50")} // line total 255.00
		pricing := mustPricing(t, "300.00", "0", "0", "0")

		_, err := order.NewOrder(
			kernel.NewUUID(), "ORD-20250114-0002", "customer-42",
			items, pricing, order.PriorityNormal, now,
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "subtotal")
	})

	t.Run("rejects_empty_items", func(t *testing.T) {
		pricing := mustPricing(t, "0", "0", "0", "0")
		_, err := order.NewOrder(
			kernel.NewUUID(), "ORD-20250114-0003", "customer-42",
			nil, pricing, order.PriorityNormal, now,
		)
		require.Error(t, err)
	})

	t.Run("rejects_missing_customer_ref", func(t *testing.T) {
		items := []order.Item{mustItem(t, "steel-rod", 1, "10")}
		pricing := mustPricing(t, "10", "0", "0", "0")
		_, err := order.NewOrder(
			kernel.NewUUID(), "ORD-20250114-0004", "",
			items, pricing, order.PriorityNormal, now,
		)
		require.Error(t, err)
	})

	t.Run("nil_order_fails_validation", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_ApplyDerivedStatus(t *testing.T) {
	now := time.Date(2025, 1, 14, 10, 30, 0, 0, time.UTC)
	items := []order.Item{mustItem(t, "steel-rod", 10, "25.50")}
	pricing := mustPricing(t, "255.00", "0", "0", "0")

	o, err := order.NewOrder(
		kernel.NewUUID(), "ORD-20250114-0001", "customer-42",
		items, pricing, order.PriorityHigh, now,
	)
	require.NoError(t, err)

	t.Run("records_transition_timestamp", func(t *testing.T) {
		later := now.Add(time.Hour)
		require.NoError(t, o.ApplyDerivedStatus(order.PartiallyScheduled, later))

		assert.Equal(t, order.PartiallyScheduled, o.Status())
		at, ok := o.StatusChangedAt(order.PartiallyScheduled)
		require.True(t, ok)
		assert.Equal(t, later, at)
	})

	t.Run("same_status_is_a_noop", func(t *testing.T) {
		before := o.StatusTimes()
		require.NoError(t, o.ApplyDerivedStatus(order.PartiallyScheduled, now.Add(2*time.Hour)))
		assert.Equal(t, before, o.StatusTimes())
	})

	t.Run("rejects_invalid_status", func(t *testing.T) {
		require.Error(t, o.ApplyDerivedStatus(order.Unknown, now))
	})
}

func TestRestoreOrder(t *testing.T) {
	now := time.Date(2025, 1, 14, 10, 30, 0, 0, time.UTC)
	items := []order.Item{mustItem(t, "steel-rod", 10, "25.50")}
	pricing := mustPricing(t, "255.00", "10.00", "5.00", "0")
	times := map[order.Status]time.Time{
		order.Processing:     now,
		order.FullyScheduled: now.Add(time.Hour),
	}

	o, err := order.RestoreOrder(
		kernel.NewUUID(), "ORD-20250114-0001", "customer-42",
		items, pricing, order.FullyScheduled, order.PriorityLow, times,
	)

	require.NoError(t, err)
	assert.Equal(t, order.FullyScheduled, o.Status())
	assert.Equal(t, times, o.StatusTimes())
}

func TestFormatNumber(t *testing.T) {
	day := time.Date(2025, 1, 14, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "ORD-20250114-0007", order.FormatNumber(day, 7))
	assert.Equal(t, "ORD-20250114-1234", order.FormatNumber(day, 1234))
}
