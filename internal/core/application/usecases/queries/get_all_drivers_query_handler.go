package queries

import (
	"context"

	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetAllDriversQueryHandler struct {
	db *gorm.DB
}

func NewGetAllDriversQueryHandler(db *gorm.DB) GetAllDriversQueryHandler {
	return GetAllDriversQueryHandler{db: db}
}

// Handle returns drivers sorted by name.
func (h GetAllDriversQueryHandler) Handle(ctx context.Context, query GetAllDriversQuery) ([]GetAllDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	drivers := make([]GetAllDriversQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.name,
			d.phone,
			COUNT(b.id)
		FROM drivers d
		LEFT JOIN batches b ON b.driver_id = d.id AND b.status = ?
		GROUP BY d.id, d.name, d.phone
		ORDER BY d.name, d.id
	`, batch.InProgress.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAllDriversQueryResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &resp.Name, &resp.Phone, &resp.ActiveBatches); err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}
