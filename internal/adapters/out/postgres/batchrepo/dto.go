package batchrepo

import (
	"time"

	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type BatchDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Status          string          `gorm:"type:varchar(16);not null;index"`
	DriverID        *uuid.UUID      `gorm:"type:uuid;index"`
	TotalWeight     float64         `gorm:"type:double precision;not null"`
	OrderCount      int             `gorm:"type:int;not null"`
	CreatedAt       time.Time       `gorm:"not null;index"`
	CompletedAt     *time.Time
	CompletionNotes string          `gorm:"type:text"`
	Orders          []BatchOrderDTO `gorm:"foreignKey:BatchID;constraint:OnDelete:CASCADE"`
}

func (BatchDTO) TableName() string {
	return "batches"
}

// BatchOrderDTO records membership. The unique order_id index guarantees an
// order belongs to at most one batch.
type BatchOrderDTO struct {
	BatchID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID  uuid.UUID `gorm:"type:uuid;primaryKey;uniqueIndex"`
	Position int       `gorm:"type:int;not null"`
}

func (BatchOrderDTO) TableName() string {
	return "batch_orders"
}

func fromDomain(b *batch.Batch) BatchDTO {
	batchID := b.ID().Bytes()
	ids := b.OrderIDs()
	members := make([]BatchOrderDTO, 0, len(ids))
	for i, id := range ids {
		members = append(members, BatchOrderDTO{
			BatchID:  batchID,
			OrderID:  id.Bytes(),
			Position: i,
		})
	}

	var driverID *uuid.UUID
	if d := b.Driver(); d != nil {
		raw := d.Bytes()
		driverID = &raw
	}

	return BatchDTO{
		ID:              batchID,
		Status:          b.Status().String(),
		DriverID:        driverID,
		TotalWeight:     b.TotalWeight(),
		OrderCount:      b.OrderCount(),
		CreatedAt:       b.CreatedAt(),
		CompletedAt:     b.CompletedAt(),
		CompletionNotes: b.CompletionNotes(),
		Orders:          members,
	}
}

func toDomain(dto BatchDTO) (*batch.Batch, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := batch.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	orderIDs := make([]kernel.UUID, 0, len(dto.Orders))
	for _, m := range dto.Orders {
		oID, orderErr := kernel.UUIDFromBytes(m.OrderID[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderIDs = append(orderIDs, oID)
	}

	return batch.RestoreBatch(batch.Snapshot{
		ID:              id,
		OrderIDs:        orderIDs,
		TotalWeight:     dto.TotalWeight,
		DriverID:        driverID,
		Status:          status,
		CreatedAt:       dto.CreatedAt,
		CompletedAt:     dto.CompletedAt,
		CompletionNotes: dto.CompletionNotes,
	})
}
