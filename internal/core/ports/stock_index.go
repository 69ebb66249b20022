package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/warehouse"
)

// WarehouseStock is one row of the stock index: a warehouse and the quantity
// of a material it had available when the snapshot was read.
type WarehouseStock struct {
	Warehouse         warehouse.Warehouse
	AvailableQuantity int
}

// StockIndex is a read-only view of per-warehouse material availability,
// owned by the inventory module. It is an advisory snapshot: nothing is
// locked or reserved by reading it, and two concurrent orders may both be
// allocated against the same stock.
type StockIndex interface {
	// StockFor returns every warehouse currently stocking the material,
	// ordered by available quantity descending with ties broken by warehouse
	// identifier ascending, so allocation is deterministic. An empty slice
	// means no warehouse stocks the material.
	StockFor(ctx context.Context, materialID kernel.UUID) ([]WarehouseStock, error)
}
