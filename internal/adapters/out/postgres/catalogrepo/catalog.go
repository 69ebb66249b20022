// Package catalogrepo implements the catalog lookup port over the materials
// table. The catalog is read-only for this subsystem; rows are maintained by
// the product module.
package catalogrepo

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MaterialDTO represents a catalog row: the canonical material descriptor and
// its list price.
type MaterialDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"not null"`
	SKU       string          `gorm:"uniqueIndex;not null"`
	Unit      string          `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2)"`
}

// TableName specifies the database table name for catalog entities.
func (MaterialDTO) TableName() string {
	return "materials"
}

// GormCatalogLookup implements CatalogLookup using GORM.
type GormCatalogLookup struct {
	db *gorm.DB
}

// NewGormCatalogLookup creates a catalog lookup over the given database.
func NewGormCatalogLookup(db *gorm.DB) *GormCatalogLookup {
	return &GormCatalogLookup{db: db}
}

// Resolve returns the catalog record for the given material reference.
func (c *GormCatalogLookup) Resolve(ctx context.Context, materialID kernel.UUID) (ports.Material, error) {
	if err := materialID.Validate(); err != nil {
		return ports.Material{}, err
	}

	var dto MaterialDTO
	if err := c.db.WithContext(ctx).First(&dto, "id = ?", materialID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Material{}, errs.NewObjectNotFoundError("material", materialID.String())
		}
		return ports.Material{}, err
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.Material{}, err
	}

	return ports.Material{
		ID:        id,
		Name:      dto.Name,
		SKU:       dto.SKU,
		Unit:      dto.Unit,
		UnitPrice: dto.UnitPrice,
	}, nil
}
