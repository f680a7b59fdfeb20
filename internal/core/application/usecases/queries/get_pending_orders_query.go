package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetPendingOrdersQueryIsNotConstructed = errors.New(
	"GetPendingOrdersQuery must be created via NewGetPendingOrdersQuery constructor",
)

// GetPendingOrdersQuery lists the orders the next generation run will consume.
//
// Example:
//
//	query := NewGetPendingOrdersQuery()
//	orders, err := NewGetPendingOrdersQueryHandler(db).Handle(ctx, query)
type GetPendingOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetPendingOrdersQuery() GetPendingOrdersQuery {
	return GetPendingOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetPendingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingOrdersQueryIsNotConstructed)
}

type GetPendingOrdersQueryResponse struct {
	ID         kernel.UUID
	PostalCode string
	Address    string
	Weight     float64
	CreatedAt  time.Time
}
