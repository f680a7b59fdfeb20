package ports

import (
	"context"

	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/kernel"
)

// BatchRepository defines the persistence contract for batch aggregates.
// Membership is written once by Add; Update only touches the driver, status
// and completion fields.
type BatchRepository interface {
	Add(ctx context.Context, aggregate *batch.Batch) error
	Update(ctx context.Context, aggregate *batch.Batch) error

	// Get returns errs.ErrObjectNotFound when the batch does not exist.
	Get(ctx context.Context, id kernel.UUID) (*batch.Batch, error)

	// ListByStatus returns batches in the given status, oldest first.
	ListByStatus(ctx context.Context, status batch.Status) ([]*batch.Batch, error)
}
