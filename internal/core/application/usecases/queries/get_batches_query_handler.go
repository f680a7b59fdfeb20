package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetBatchesQueryHandler struct {
	db *gorm.DB
}

func NewGetBatchesQueryHandler(db *gorm.DB) GetBatchesQueryHandler {
	return GetBatchesQueryHandler{db: db}
}

func (h GetBatchesQueryHandler) Handle(ctx context.Context, query GetBatchesQuery) ([]BatchView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if status := query.Status(); status != nil {
		return loadBatches(ctx, h.db, batchColumns+`
		WHERE status = ?
		ORDER BY created_at DESC, id`, status.String())
	}

	return loadBatches(ctx, h.db, batchColumns+`
		ORDER BY created_at DESC, id`)
}
