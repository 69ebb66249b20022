// Package ports defines the contracts between the fulfillment core and its
// collaborators: persistence, the material catalog, and the inventory module's
// stock index. These interfaces establish dependency inversion and keep the
// domain testable.
package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Material is the catalog record for a material reference: its canonical
// name, stock keeping unit, unit of measure, and list price.
type Material struct {
	ID        kernel.UUID
	Name      string
	SKU       string
	Unit      string
	UnitPrice decimal.Decimal
}

// CatalogLookup resolves material references against the product catalog.
// Implementations are side-effect free.
type CatalogLookup interface {
	// Resolve returns the catalog record for the given material reference.
	// Returns an error unwrapping to errs.ErrObjectNotFound when the
	// reference does not exist.
	Resolve(ctx context.Context, materialID kernel.UUID) (Material, error)
}
