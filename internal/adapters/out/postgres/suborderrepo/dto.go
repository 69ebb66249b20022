// Package suborderrepo provides data transfer objects and mapping functions
// for sub-order persistence. A sub-order row carries a denormalized copy of
// its warehouse descriptor so reads never need the inventory module.
package suborderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/suborder"
	"warehouse/internal/core/domain/model/warehouse"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubOrderDTO represents the database structure for persisting sub-order
// aggregates.
type SubOrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number      string    `gorm:"uniqueIndex;not null"`
	OrderID     uuid.UUID `gorm:"type:uuid;index;not null"`
	OrderNumber string    `gorm:"not null"`

	WarehouseID       uuid.UUID `gorm:"type:uuid;index;not null"`
	WarehouseName     string    `gorm:"not null"`
	WarehouseLocation string

	Items []ItemDTO `gorm:"foreignKey:SubOrderID;constraint:OnDelete:CASCADE"`

	Subtotal        decimal.Decimal `gorm:"type:numeric(14,2)"`
	Tax             decimal.Decimal `gorm:"type:numeric(14,2)"`
	DeliveryCharges decimal.Decimal `gorm:"type:numeric(14,2)"`
	Total           decimal.Decimal `gorm:"type:numeric(14,2)"`
	Currency        string          `gorm:"type:varchar(3)"`

	Status      string         `gorm:"index"`
	StatusTimes StatusTimesDTO `gorm:"type:jsonb"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for sub-order entities.
func (SubOrderDTO) TableName() string {
	return "suborders"
}

// ItemDTO represents one sub-order line, including the inventory figures
// written by the reservation step.
type ItemDTO struct {
	ID                uint      `gorm:"primaryKey;autoIncrement"`
	SubOrderID        uuid.UUID `gorm:"type:uuid;index;not null"`
	Position          int       `gorm:"not null"`
	MaterialID        uuid.UUID `gorm:"type:uuid;not null"`
	Name              string    `gorm:"not null"`
	SKU               string    `gorm:"not null"`
	Unit              string
	Quantity          int             `gorm:"not null"`
	UnitPrice         decimal.Decimal `gorm:"type:numeric(14,2)"`
	LineTotal         decimal.Decimal `gorm:"type:numeric(14,2)"`
	AvailableQuantity int
	AllocatedQuantity int
}

// TableName specifies the database table name for sub-order line entities.
func (ItemDTO) TableName() string {
	return "suborder_items"
}

// StatusTimesDTO stores the status timestamp trail as a jsonb object keyed by
// status name.
type StatusTimesDTO map[string]time.Time

// Value implements driver.Valuer for jsonb storage.
func (st StatusTimesDTO) Value() (driver.Value, error) {
	if st == nil {
		st = StatusTimesDTO{}
	}
	return json.Marshal(st)
}

// Scan implements sql.Scanner for jsonb retrieval.
func (st *StatusTimesDTO) Scan(value any) error {
	if value == nil {
		*st = StatusTimesDTO{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported status_times column type %T", value)
	}

	return json.Unmarshal(raw, st)
}

// fromDomain converts a sub-order aggregate to its database representation.
func fromDomain(aggregate *suborder.SubOrder) SubOrderDTO {
	items := aggregate.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))
	for i, item := range items {
		itemDTOs = append(itemDTOs, ItemDTO{
			SubOrderID:        aggregate.ID().Bytes(),
			Position:          i,
			MaterialID:        item.MaterialID().Bytes(),
			Name:              item.Name(),
			SKU:               item.SKU(),
			Unit:              item.Unit(),
			Quantity:          item.Quantity(),
			UnitPrice:         item.UnitPrice(),
			LineTotal:         item.LineTotal(),
			AvailableQuantity: item.AvailableQuantity(),
			AllocatedQuantity: item.AllocatedQuantity(),
		})
	}

	statusTimes := make(StatusTimesDTO, len(aggregate.StatusTimes()))
	for status, at := range aggregate.StatusTimes() {
		statusTimes[status.String()] = at
	}

	wh := aggregate.Warehouse()
	pricing := aggregate.Pricing()
	return SubOrderDTO{
		ID:                aggregate.ID().Bytes(),
		Number:            aggregate.Number(),
		OrderID:           aggregate.OrderID().Bytes(),
		OrderNumber:       aggregate.OrderNumber(),
		WarehouseID:       wh.ID().Bytes(),
		WarehouseName:     wh.Name(),
		WarehouseLocation: wh.Location(),
		Items:             itemDTOs,
		Subtotal:          pricing.Subtotal(),
		Tax:               pricing.Tax(),
		DeliveryCharges:   pricing.DeliveryCharges(),
		Total:             pricing.Total(),
		Currency:          pricing.Currency(),
		Status:            aggregate.Status().String(),
		StatusTimes:       statusTimes,
	}
}

// toDomain converts a database DTO back to a sub-order aggregate.
func toDomain(dto SubOrderDTO) (*suborder.SubOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}

	wh, err := warehouse.NewWarehouse(warehouseID, dto.WarehouseName, dto.WarehouseLocation)
	if err != nil {
		return nil, err
	}

	items := make([]suborder.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		materialID, idErr := kernel.UUIDFromBytes(itemDTO.MaterialID[:])
		if idErr != nil {
			return nil, idErr
		}

		item, itemErr := suborder.RestoreItem(
			materialID, itemDTO.Name, itemDTO.SKU, itemDTO.Unit,
			itemDTO.Quantity, itemDTO.UnitPrice,
			itemDTO.AvailableQuantity, itemDTO.AllocatedQuantity,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	pricing, err := suborder.NewPricing(dto.Subtotal, dto.Tax, dto.DeliveryCharges, dto.Currency)
	if err != nil {
		return nil, err
	}

	status, err := suborder.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	statusTimes := make(map[suborder.Status]time.Time, len(dto.StatusTimes))
	for name, at := range dto.StatusTimes {
		s, sErr := suborder.StatusFromString(name)
		if sErr != nil {
			return nil, sErr
		}
		statusTimes[s] = at
	}

	return suborder.RestoreSubOrder(
		id, dto.Number, orderID, dto.OrderNumber, wh, items, pricing, status, statusTimes,
	)
}
