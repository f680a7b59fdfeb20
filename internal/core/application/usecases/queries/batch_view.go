package queries

import (
	"context"
	"database/sql"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BatchView is the read model of a batch with its member orders in batch order.
type BatchView struct {
	ID              kernel.UUID
	Status          string
	DriverID        *kernel.UUID
	TotalWeight     float64
	OrderCount      int
	CreatedAt       time.Time
	CompletedAt     *time.Time
	CompletionNotes string
	Orders          []BatchOrderView
}

// BatchOrderView is one member order. Location is nil only for data written
// before coordinates were stored.
type BatchOrderView struct {
	ID         kernel.UUID
	PostalCode string
	Address    string
	Weight     float64
	Status     string
	Location   *kernel.GeoPoint
}

const batchColumns = `
		SELECT
			id,
			status,
			driver_id,
			total_weight,
			order_count,
			created_at,
			completed_at,
			completion_notes
		FROM batches`

// loadBatches runs a batch SELECT built on batchColumns and attaches members.
func loadBatches(ctx context.Context, db *gorm.DB, sqlQuery string, args ...any) ([]BatchView, error) {
	rows, err := db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	batches := make([]BatchView, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var view BatchView
		var id uuid.UUID
		var driverID uuid.NullUUID
		var completedAt sql.NullTime
		var notes sql.NullString

		if err = rows.Scan(
			&id,
			&view.Status,
			&driverID,
			&view.TotalWeight,
			&view.OrderCount,
			&view.CreatedAt,
			&completedAt,
			&notes,
		); err != nil {
			return nil, err
		}

		view.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		if driverID.Valid {
			d, dErr := kernel.UUIDFromBytes(driverID.UUID[:])
			if dErr != nil {
				return nil, dErr
			}
			view.DriverID = &d
		}
		if completedAt.Valid {
			at := completedAt.Time
			view.CompletedAt = &at
		}
		view.CompletionNotes = notes.String
		view.Orders = make([]BatchOrderView, 0, view.OrderCount)

		index[id] = len(batches)
		batches = append(batches, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(batches) == 0 {
		return batches, nil
	}

	ids := make([]uuid.UUID, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}
	if err = attachMembers(ctx, db, ids, batches, index); err != nil {
		return nil, err
	}

	return batches, nil
}

func attachMembers(ctx context.Context, db *gorm.DB, ids []uuid.UUID, batches []BatchView, index map[uuid.UUID]int) error {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			bo.batch_id,
			o.id,
			o.postal_code,
			o.address,
			o.weight,
			o.status,
			o.lat,
			o.lng
		FROM batch_orders bo
		JOIN orders o ON o.id = bo.order_id
		WHERE bo.batch_id IN ?
		ORDER BY bo.batch_id, bo.position
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var member BatchOrderView
		var batchID, orderID uuid.UUID
		var lat, lng sql.NullFloat64

		if err = rows.Scan(
			&batchID,
			&orderID,
			&member.PostalCode,
			&member.Address,
			&member.Weight,
			&member.Status,
			&lat,
			&lng,
		); err != nil {
			return err
		}

		member.ID, err = kernel.UUIDFromBytes(orderID[:])
		if err != nil {
			return err
		}
		if lat.Valid && lng.Valid {
			p, pErr := kernel.NewGeoPoint(lat.Float64, lng.Float64)
			if pErr != nil {
				return pErr
			}
			member.Location = &p
		}

		i, ok := index[batchID]
		if !ok {
			continue
		}
		batches[i].Orders = append(batches[i].Orders, member)
	}

	return rows.Err()
}
