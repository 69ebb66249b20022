package queries

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order, its lines, and its sub-order summaries
// from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFoundError when no order with
// the requested ID exists.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	response, err := h.readOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.Items, err = h.readItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.SubOrders, err = h.readSubOrderSummaries(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

func (h GetOrderQueryHandler) readOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (GetOrderQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			customer_ref,
			status,
			priority,
			subtotal,
			tax,
			delivery_charges,
			discount,
			total,
			currency,
			created_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderQueryResponse{}, err
		}
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
	}

	var (
		response  GetOrderQueryResponse
		id        uuid.UUID
		createdAt time.Time
	)
	err = rows.Scan(
		&id,
		&response.Number,
		&response.CustomerRef,
		&response.Status,
		&response.Priority,
		&response.Subtotal,
		&response.Tax,
		&response.DeliveryCharges,
		&response.Discount,
		&response.Total,
		&response.Currency,
		&createdAt,
	)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.CreatedAt = createdAt

	return response, nil
}

func (h GetOrderQueryHandler) readItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			material_id,
			name,
			sku,
			unit,
			quantity,
			unit_price,
			line_total
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var (
			item       OrderItemResponse
			materialID uuid.UUID
		)
		err = rows.Scan(
			&materialID,
			&item.Name,
			&item.SKU,
			&item.Unit,
			&item.Quantity,
			&item.UnitPrice,
			&item.LineTotal,
		)
		if err != nil {
			return nil, err
		}

		item.MaterialID, err = kernel.UUIDFromBytes(materialID[:])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (h GetOrderQueryHandler) readSubOrderSummaries(
	ctx context.Context,
	orderID kernel.UUID,
) ([]SubOrderSummaryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			warehouse_name,
			status,
			total,
			currency
		FROM suborders
		WHERE order_id = ?
		ORDER BY number
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]SubOrderSummaryResponse, 0)
	for rows.Next() {
		var (
			summary SubOrderSummaryResponse
			id      uuid.UUID
			total   decimal.Decimal
		)
		err = rows.Scan(
			&id,
			&summary.Number,
			&summary.WarehouseName,
			&summary.Status,
			&total,
			&summary.Currency,
		)
		if err != nil {
			return nil, err
		}

		summary.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		summary.Total = total
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
