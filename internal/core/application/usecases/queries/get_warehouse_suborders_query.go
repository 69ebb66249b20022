package queries

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetWarehouseSubOrdersQueryIsNotConstructed = errors.New(
		"GetWarehouseSubOrdersQuery must be created via NewGetWarehouseSubOrdersQuery constructor",
	)
)

// GetWarehouseSubOrdersQuery retrieves the sub-orders routed to one warehouse,
// the working queue a warehouse operator fulfils from.
type GetWarehouseSubOrdersQuery struct {
	guard guard.ConstructorGuard

	warehouseID kernel.UUID
}

// NewGetWarehouseSubOrdersQuery creates a query for the given warehouse.
func NewGetWarehouseSubOrdersQuery(warehouseID kernel.UUID) (GetWarehouseSubOrdersQuery, error) {
	if err := warehouseID.Validate(); err != nil {
		return GetWarehouseSubOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("warehouseID", err)
	}

	return GetWarehouseSubOrdersQuery{
		guard:       guard.NewConstructorGuard(),
		warehouseID: warehouseID,
	}, nil
}

// WarehouseID returns the identifier of the warehouse whose queue is fetched.
func (q GetWarehouseSubOrdersQuery) WarehouseID() kernel.UUID {
	return q.warehouseID
}

// Validate ensures the query was created through the constructor.
func (q GetWarehouseSubOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetWarehouseSubOrdersQueryIsNotConstructed)
}

// GetWarehouseSubOrdersQueryResponse is the read model for one sub-order in a
// warehouse queue. OrderNumber and Priority come from the parent order so the
// queue can be worked without extra lookups.
type GetWarehouseSubOrdersQueryResponse struct {
	ID          kernel.UUID
	Number      string
	OrderNumber string
	Priority    string
	Status      string
	Total       decimal.Decimal
	Currency    string
	CreatedAt   time.Time
}
