// Package warehouse holds the warehouse descriptor shared by the stock index
// and the sub-order aggregate. A warehouse is not an aggregate of this
// subsystem: allocation only needs its identity and display attributes, while
// stock levels and operations live with the inventory module.
package warehouse

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var ErrWarehouseIsNotConstructed = errors.New("Warehouse must be created via NewWarehouse constructor")

// Warehouse identifies a physical warehouse: id, display name, and a
// free-form location descriptor. It is an immutable value object.
type Warehouse struct { //nolint:recvcheck //using for validation
	id       kernel.UUID
	name     string
	location string

	guard guard.ConstructorGuard
}

// NewWarehouse creates a warehouse descriptor. The id must be a valid UUID and
// the name must be present; location is free-form and may be empty.
func NewWarehouse(id kernel.UUID, name, location string) (Warehouse, error) {
	w := Warehouse{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
	); err != nil {
		return Warehouse{}, err
	}

	w.location = location
	return w, nil
}

// Validate ensures the descriptor was created through NewWarehouse.
func (w Warehouse) Validate() error {
	return w.guard.Validate(ErrWarehouseIsNotConstructed)
}

// ID returns the warehouse identifier.
func (w Warehouse) ID() kernel.UUID {
	return w.id
}

// Name returns the warehouse display name.
func (w Warehouse) Name() string {
	return w.name
}

// Location returns the free-form location descriptor.
func (w Warehouse) Location() string {
	return w.location
}

// IsEqual compares two warehouses by identifier.
func (w Warehouse) IsEqual(other Warehouse) bool {
	return w.id.IsEqual(other.id)
}

func (w *Warehouse) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Warehouse) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("warehouse name")
	}
	w.name = name
	return nil
}
