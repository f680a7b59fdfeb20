package queries

import (
	"context"

	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type GetBatchStatsQueryHandler struct {
	db *gorm.DB
}

func NewGetBatchStatsQueryHandler(db *gorm.DB) GetBatchStatsQueryHandler {
	return GetBatchStatsQueryHandler{db: db}
}

func (h GetBatchStatsQueryHandler) Handle(ctx context.Context, query GetBatchStatsQuery) (GetBatchStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBatchStatsQueryResponse{}, err
	}

	stats := GetBatchStatsQueryResponse{ByStatus: make(map[string]int)}
	for _, s := range batch.Statuses() {
		stats.ByStatus[s.String()] = 0
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*),
			COALESCE(SUM(total_weight), 0)
		FROM batches
		GROUP BY status
	`).Rows()
	if err != nil {
		return GetBatchStatsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		var weight float64
		if err = rows.Scan(&status, &count, &weight); err != nil {
			return GetBatchStatsQueryResponse{}, err
		}

		stats.ByStatus[status] = count
		stats.Total += count
		stats.TotalWeight += weight
	}
	if err = rows.Err(); err != nil {
		return GetBatchStatsQueryResponse{}, err
	}

	var pending int64
	if err = h.db.WithContext(ctx).
		Table("orders").
		Where("status = ?", order.Pending.String()).
		Count(&pending).Error; err != nil {
		return GetBatchStatsQueryResponse{}, err
	}
	stats.PendingOrders = int(pending)

	return stats, nil
}
