// Package stockindex implements the stock index port over the warehouses and
// warehouse_stocks tables maintained by the inventory module. Reads are
// advisory snapshots; nothing is locked or reserved.
package stockindex

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/warehouse"
	"warehouse/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WarehouseDTO represents a warehouse row.
type WarehouseDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"not null"`
	Location string
}

// TableName specifies the database table name for warehouse entities.
func (WarehouseDTO) TableName() string {
	return "warehouses"
}

// WarehouseStockDTO represents one per-warehouse availability row.
type WarehouseStockDTO struct {
	WarehouseID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	MaterialID        uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	AvailableQuantity int       `gorm:"not null"`
}

// TableName specifies the database table name for stock entities.
func (WarehouseStockDTO) TableName() string {
	return "warehouse_stocks"
}

// GormStockIndex implements StockIndex using GORM.
type GormStockIndex struct {
	db *gorm.DB
}

// NewGormStockIndex creates a stock index over the given database.
func NewGormStockIndex(db *gorm.DB) *GormStockIndex {
	return &GormStockIndex{db: db}
}

// StockFor returns every warehouse stocking the material, ordered by available
// quantity descending with ties broken by warehouse id ascending. A warehouse
// that stocked the material but ran dry still appears with quantity zero; only
// materials no warehouse ever stocked yield an empty result.
func (s *GormStockIndex) StockFor(
	ctx context.Context,
	materialID kernel.UUID,
) ([]ports.WarehouseStock, error) {
	if err := materialID.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.db.WithContext(ctx).Raw(`
		SELECT
			w.id,
			w.name,
			w.location,
			s.available_quantity
		FROM warehouse_stocks s
		JOIN warehouses w ON w.id = s.warehouse_id
		WHERE s.material_id = ?
		ORDER BY s.available_quantity DESC, w.id ASC
	`, materialID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stocks := make([]ports.WarehouseStock, 0)
	for rows.Next() {
		var (
			id       uuid.UUID
			name     string
			location string
			quantity int
		)
		if err = rows.Scan(&id, &name, &location, &quantity); err != nil {
			return nil, err
		}

		warehouseID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		wh, whErr := warehouse.NewWarehouse(warehouseID, name, location)
		if whErr != nil {
			return nil, whErr
		}

		stocks = append(stocks, ports.WarehouseStock{
			Warehouse:         wh,
			AvailableQuantity: quantity,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stocks, nil
}
