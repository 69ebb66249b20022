package suborderrepo

import (
	"context"
	"errors"

	"warehouse/internal/adapters/out/postgres/conflict"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/suborder"
	"warehouse/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSubOrderRepository implements SubOrderRepository using GORM.
type GormSubOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSubOrderRepository creates a new GORM sub-order repository.
func NewGormSubOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormSubOrderRepository {
	return &GormSubOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new sub-order with its items to the database.
func (r *GormSubOrderRepository) Add(ctx context.Context, aggregate *suborder.SubOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return conflict.Classify("suborder add", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists the mutable part of a sub-order: status, the status
// timestamp trail, and the per-item inventory figures.
func (r *GormSubOrderRepository) Update(ctx context.Context, aggregate *suborder.SubOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&SubOrderDTO{}).Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":       dto.Status,
			"status_times": dto.StatusTimes,
		})
	if result.Error != nil {
		return conflict.Classify("suborder update", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("suborder", aggregate.ID().String())
	}

	for _, itemDTO := range dto.Items {
		err := r.db.WithContext(ctx).Model(&ItemDTO{}).
			Where("sub_order_id = ? AND position = ?", itemDTO.SubOrderID, itemDTO.Position).
			Updates(map[string]any{
				"available_quantity": itemDTO.AvailableQuantity,
				"allocated_quantity": itemDTO.AllocatedQuantity,
			}).Error
		if err != nil {
			return conflict.Classify("suborder item update", err)
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a sub-order by ID, items included.
func (r *GormSubOrderRepository) Get(ctx context.Context, id kernel.UUID) (*suborder.SubOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SubOrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("suborder", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderID retrieves the full sibling set of a parent order, ordered by
// sub-order number.
func (r *GormSubOrderRepository) GetByOrderID(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*suborder.SubOrder, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []SubOrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("order_id = ?", orderID.Bytes()).
		Order("number ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	subOrders := make([]*suborder.SubOrder, 0, len(dtos))
	for _, dto := range dtos {
		so, dErr := toDomain(dto)
		if dErr != nil {
			return nil, dErr
		}
		subOrders = append(subOrders, so)
	}

	return subOrders, nil
}
