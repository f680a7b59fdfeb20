// Package orderrepo persists order aggregates with GORM.
package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository on the orders table.
// It runs on whatever *gorm.DB it is given, so the unit of work can bind it
// to an open transaction.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListPending selects PENDING orders FOR UPDATE. Outside a transaction the
// lock is released as soon as the statement completes.
func (r *GormOrderRepository) ListPending(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("status = ?", order.Pending.String()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormOrderRepository) MarkAssigned(ctx context.Context, orders []*order.Order) error {
	db := r.db.WithContext(ctx)
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return err
		}
		if o.Status() != order.Assigned || o.Batch() == nil || o.GeoPoint() == nil {
			return fmt.Errorf("order %s is not ready to be stored as assigned", o.ID())
		}

		result := db.Model(&OrderDTO{}).
			Where("id = ? AND status = ?", o.ID().Bytes(), order.Pending.String()).
			Updates(map[string]any{
				"status":   order.Assigned.String(),
				"batch_id": o.Batch().Bytes(),
				"lat":      o.GeoPoint().Lat(),
				"lng":      o.GeoPoint().Lng(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return fmt.Errorf("order %s: %w", o.ID(), ports.ErrConcurrentUpdate)
		}
	}

	return nil
}

func (r *GormOrderRepository) ListByBatch(ctx context.Context, batchID kernel.UUID) ([]*order.Order, error) {
	if err := batchID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}
