package queries

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetWarehouseSubOrdersQueryHandler reads the sub-order queue of one warehouse
// from the database. Parent priority is joined in so urgent work sorts first.
type GetWarehouseSubOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetWarehouseSubOrdersQueryHandler creates a handler for warehouse queue queries.
func NewGetWarehouseSubOrdersQueryHandler(db *gorm.DB) GetWarehouseSubOrdersQueryHandler {
	return GetWarehouseSubOrdersQueryHandler{db: db}
}

// Handle executes the query. Sub-orders come back ordered by parent priority
// (urgent first) and then by sub-order number. A warehouse with no sub-orders
// yields an empty slice, not an error.
func (h GetWarehouseSubOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetWarehouseSubOrdersQuery,
) ([]GetWarehouseSubOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.number,
			s.order_number,
			o.priority,
			s.status,
			s.total,
			s.currency,
			s.created_at
		FROM suborders s
		JOIN orders o ON o.id = s.order_id
		WHERE s.warehouse_id = ?
		ORDER BY
			CASE o.priority
				WHEN 'urgent' THEN 0
				WHEN 'high' THEN 1
				WHEN 'normal' THEN 2
				ELSE 3
			END,
			s.number
	`, query.WarehouseID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subOrders := make([]GetWarehouseSubOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			resp      GetWarehouseSubOrdersQueryResponse
			id        uuid.UUID
			createdAt time.Time
		)
		err = rows.Scan(
			&id,
			&resp.Number,
			&resp.OrderNumber,
			&resp.Priority,
			&resp.Status,
			&resp.Total,
			&resp.Currency,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.CreatedAt = createdAt
		subOrders = append(subOrders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return subOrders, nil
}
