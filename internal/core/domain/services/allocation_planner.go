package services

import (
	"context"
	"errors"
	"fmt"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/warehouse"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrMaterialNotFound is returned when a line item references a material
	// the catalog cannot resolve. The whole planning step is aborted; no
	// partial order is created.
	ErrMaterialNotFound = errors.New("material not found in catalog")

	// ErrUnallocatableItem is returned when no warehouse has ever stocked a
	// line item's material. The whole allocation fails rather than silently
	// dropping the item from every sub-order.
	ErrUnallocatableItem = errors.New("material is not stocked by any warehouse")
)

// DraftLine is one validated line of an inbound order draft. UnitPrice is
// optional; when nil, the catalog list price is used.
type DraftLine struct {
	MaterialID kernel.UUID
	Quantity   int
	UnitPrice  *decimal.Decimal
}

// WarehouseGroup is the planner's output for one warehouse: the warehouse
// descriptor and the enriched order lines assigned to it.
type WarehouseGroup struct {
	Warehouse warehouse.Warehouse
	Items     []order.Item
}

// AllocationPlanner partitions an order's line items into warehouse groups.
//
// The policy is greedy and single-warehouse-per-item: each line goes whole to
// one warehouse, never split across several. For each line the planner prefers
// the warehouse with the most stock among those that fully cover the quantity;
// when none covers it, the line still goes to the warehouse with the maximum
// availability and the shortfall is left for the fulfillment-time stock check.
//
// The stock index ordering (quantity descending, warehouse id ascending) makes
// both choices deterministic: identical input and snapshot always produce an
// identical grouping.
type AllocationPlanner struct {
	catalog    ports.CatalogLookup
	stockIndex ports.StockIndex
}

// NewAllocationPlanner creates a planner over the given catalog and stock index.
func NewAllocationPlanner(catalog ports.CatalogLookup, stockIndex ports.StockIndex) AllocationPlanner {
	return AllocationPlanner{
		catalog:    catalog,
		stockIndex: stockIndex,
	}
}

// Plan enriches the draft lines via the catalog and assigns each to a
// warehouse.
//
// Returns:
//   - the enriched order items, in draft line order (for the parent order)
//   - the warehouse groups, in first-encounter insertion order (which fixes
//     sub-order numbering)
//
// Error conditions:
//   - ErrMaterialNotFound when the catalog cannot resolve a line's material
//   - ErrUnallocatableItem when no warehouse stocks a line's material
//
// Any error aborts the whole plan; callers must not persist partial results.
func (p AllocationPlanner) Plan(
	ctx context.Context,
	lines []DraftLine,
) ([]order.Item, []WarehouseGroup, error) {
	if len(lines) == 0 {
		return nil, nil, errs.NewValueIsRequiredError("order lines")
	}

	items := make([]order.Item, 0, len(lines))
	groups := make([]WarehouseGroup, 0, len(lines))
	groupIndex := make(map[kernel.UUID]int, len(lines))

	for _, line := range lines {
		item, err := p.enrich(ctx, line)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, item)

		wh, err := p.chooseWarehouse(ctx, line.MaterialID, line.Quantity)
		if err != nil {
			return nil, nil, err
		}

		if idx, ok := groupIndex[wh.ID()]; ok {
			groups[idx].Items = append(groups[idx].Items, item)
			continue
		}

		groupIndex[wh.ID()] = len(groups)
		groups = append(groups, WarehouseGroup{
			Warehouse: wh,
			Items:     []order.Item{item},
		})
	}

	return items, groups, nil
}

// enrich resolves the line's material and builds the order item, preferring
// the draft's explicit unit price over the catalog list price.
func (p AllocationPlanner) enrich(ctx context.Context, line DraftLine) (order.Item, error) {
	material, err := p.catalog.Resolve(ctx, line.MaterialID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return order.Item{}, fmt.Errorf("%w: %s", ErrMaterialNotFound, line.MaterialID)
		}
		return order.Item{}, err
	}

	unitPrice := material.UnitPrice
	if line.UnitPrice != nil {
		unitPrice = *line.UnitPrice
	}

	return order.NewItem(material.ID, material.Name, material.SKU, material.Unit, line.Quantity, unitPrice)
}

// chooseWarehouse applies the greedy policy for one line: first full-coverage
// candidate in index order, else the warehouse with maximum availability.
func (p AllocationPlanner) chooseWarehouse(
	ctx context.Context,
	materialID kernel.UUID,
	quantity int,
) (warehouse.Warehouse, error) {
	stocks, err := p.stockIndex.StockFor(ctx, materialID)
	if err != nil {
		return warehouse.Warehouse{}, err
	}

	if len(stocks) == 0 {
		return warehouse.Warehouse{}, fmt.Errorf("%w: %s", ErrUnallocatableItem, materialID)
	}

	for _, stock := range stocks {
		if stock.AvailableQuantity >= quantity {
			return stock.Warehouse, nil
		}
	}

	// No full coverage anywhere: fall back to the warehouse with the most
	// stock (the first row, given the index ordering). The fulfillment-time
	// stock check flags the shortfall.
	return stocks[0].Warehouse, nil
}
