package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAllDriversQueryIsNotConstructed = errors.New(
	"GetAllDriversQuery must be created via NewGetAllDriversQuery constructor",
)

// GetAllDriversQuery lists registered drivers with the number of batches
// they are currently working on.
type GetAllDriversQuery struct {
	guard guard.ConstructorGuard
}

func NewGetAllDriversQuery() GetAllDriversQuery {
	return GetAllDriversQuery{guard: guard.NewConstructorGuard()}
}

func (q GetAllDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetAllDriversQueryIsNotConstructed)
}

type GetAllDriversQueryResponse struct {
	ID            kernel.UUID
	Name          string
	Phone         string
	ActiveBatches int
}
