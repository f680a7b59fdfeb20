package queries

import (
	"context"

	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetBatchQueryHandler struct {
	db *gorm.DB
}

func NewGetBatchQueryHandler(db *gorm.DB) GetBatchQueryHandler {
	return GetBatchQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound when the batch does not exist.
func (h GetBatchQueryHandler) Handle(ctx context.Context, query GetBatchQuery) (BatchView, error) {
	if err := query.Validate(); err != nil {
		return BatchView{}, err
	}

	batches, err := loadBatches(ctx, h.db, batchColumns+`
		WHERE id = ?`, query.BatchID().Bytes())
	if err != nil {
		return BatchView{}, err
	}
	if len(batches) == 0 {
		return BatchView{}, errs.NewObjectNotFoundError("batch", query.BatchID().String())
	}

	return batches[0], nil
}
