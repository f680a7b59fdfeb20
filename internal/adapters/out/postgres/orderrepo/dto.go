package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PostalCode    string     `gorm:"type:varchar(16);not null;index"`
	Address       string     `gorm:"type:text;not null"`
	Weight        float64    `gorm:"type:double precision;not null"`
	CustomerName  string     `gorm:"type:varchar(255)"`
	CustomerPhone string     `gorm:"type:varchar(32)"`
	PaymentType   string     `gorm:"type:varchar(16);not null"`
	Amount        float64    `gorm:"type:double precision;not null;default:0"`
	Status        string     `gorm:"type:varchar(16);not null;index"`
	Lat           *float64   `gorm:"type:double precision"`
	Lng           *float64   `gorm:"type:double precision"`
	BatchID       *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt     time.Time  `gorm:"not null;index"`
	DeliveredAt   *time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:            o.ID().Bytes(),
		PostalCode:    o.PostalCode(),
		Address:       o.Address(),
		Weight:        o.Weight(),
		CustomerName:  o.Customer().Name,
		CustomerPhone: o.Customer().Phone,
		PaymentType:   string(o.PaymentType()),
		Amount:        o.Amount(),
		Status:        o.Status().String(),
		CreatedAt:     o.CreatedAt(),
		DeliveredAt:   o.DeliveredAt(),
	}

	if p := o.GeoPoint(); p != nil {
		lat, lng := p.Lat(), p.Lng()
		dto.Lat, dto.Lng = &lat, &lng
	}

	if id := o.Batch(); id != nil {
		raw := id.Bytes()
		dto.BatchID = &raw
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var batchID *kernel.UUID
	if dto.BatchID != nil {
		bID, batchErr := kernel.UUIDFromBytes((*dto.BatchID)[:])
		if batchErr != nil {
			return nil, batchErr
		}

		batchID = &bID
	}

	var point *kernel.GeoPoint
	if dto.Lat != nil && dto.Lng != nil {
		p, pointErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
		if pointErr != nil {
			return nil, pointErr
		}

		point = &p
	}

	return order.RestoreOrder(order.Snapshot{
		ID:         id,
		PostalCode: dto.PostalCode,
		Address:    dto.Address,
		Weight:     dto.Weight,
		Customer: order.Customer{
			Name:  dto.CustomerName,
			Phone: dto.CustomerPhone,
		},
		PaymentType: order.PaymentType(dto.PaymentType),
		Amount:      dto.Amount,
		Status:      status,
		GeoPoint:    point,
		BatchID:     batchID,
		CreatedAt:   dto.CreatedAt,
		DeliveredAt: dto.DeliveredAt,
	})
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
