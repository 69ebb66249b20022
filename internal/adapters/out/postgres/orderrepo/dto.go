// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Statuses and priorities are stored as their snake_case strings so the rows
// stay readable in ad-hoc queries.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number      string    `gorm:"uniqueIndex;not null"`
	CustomerRef string    `gorm:"not null"`
	Items       []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	Subtotal        decimal.Decimal `gorm:"type:numeric(14,2)"`
	Tax             decimal.Decimal `gorm:"type:numeric(14,2)"`
	DeliveryCharges decimal.Decimal `gorm:"type:numeric(14,2)"`
	Discount        decimal.Decimal `gorm:"type:numeric(14,2)"`
	Total           decimal.Decimal `gorm:"type:numeric(14,2)"`
	Currency        string          `gorm:"type:varchar(3)"`

	Status      string         `gorm:"index"`
	Priority    string         `gorm:"not null"`
	StatusTimes StatusTimesDTO `gorm:"type:jsonb"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line. Position preserves the draft line order
// the aggregate was created with.
type ItemDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Position   int       `gorm:"not null"`
	MaterialID uuid.UUID `gorm:"type:uuid;not null"`
	Name       string    `gorm:"not null"`
	SKU        string    `gorm:"not null"`
	Unit       string
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(14,2)"`
	LineTotal  decimal.Decimal `gorm:"type:numeric(14,2)"`
}

// TableName specifies the database table name for order line entities.
func (ItemDTO) TableName() string {
	return "order_items"
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

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))
	for i, item := range items {
		itemDTOs = append(itemDTOs, ItemDTO{
			OrderID:    aggregate.ID().Bytes(),
			Position:   i,
			MaterialID: item.MaterialID().Bytes(),
			Name:       item.Name(),
			SKU:        item.SKU(),
			Unit:       item.Unit(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
			LineTotal:  item.LineTotal(),
		})
	}

	statusTimes := make(StatusTimesDTO, len(aggregate.StatusTimes()))
	for status, at := range aggregate.StatusTimes() {
		statusTimes[status.String()] = at
	}

	pricing := aggregate.Pricing()
	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		Number:          aggregate.Number(),
		CustomerRef:     aggregate.CustomerRef(),
		Items:           itemDTOs,
		Subtotal:        pricing.Subtotal(),
		Tax:             pricing.Tax(),
		DeliveryCharges: pricing.DeliveryCharges(),
		Discount:        pricing.Discount(),
		Total:           pricing.Total(),
		Currency:        pricing.Currency(),
		Status:          aggregate.Status().String(),
		Priority:        aggregate.Priority().String(),
		StatusTimes:     statusTimes,
	}
}

// toDomain converts a database DTO back to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		materialID, idErr := kernel.UUIDFromBytes(itemDTO.MaterialID[:])
		if idErr != nil {
			return nil, idErr
		}

		item, itemErr := order.NewItem(
			materialID, itemDTO.Name, itemDTO.SKU, itemDTO.Unit,
			itemDTO.Quantity, itemDTO.UnitPrice,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	pricing, err := order.NewPricing(
		dto.Subtotal, dto.Tax, dto.DeliveryCharges, dto.Discount, dto.Currency,
	)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	priority, err := order.PriorityFromString(dto.Priority)
	if err != nil {
		return nil, err
	}

	statusTimes := make(map[order.Status]time.Time, len(dto.StatusTimes))
	for name, at := range dto.StatusTimes {
		s, sErr := order.StatusFromString(name)
		if sErr != nil {
			return nil, sErr
		}
		statusTimes[s] = at
	}

	return order.RestoreOrder(
		id, dto.Number, dto.CustomerRef, items, pricing, status, priority, statusTimes,
	)
}
