package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetBatchQueryIsNotConstructed = errors.New(
	"GetBatchQuery must be created via NewGetBatchQuery constructor",
)

// GetBatchQuery fetches one batch with its member orders.
type GetBatchQuery struct {
	batchID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetBatchQuery(batchID kernel.UUID) (GetBatchQuery, error) {
	if err := batchID.Validate(); err != nil {
		return GetBatchQuery{}, err
	}

	return GetBatchQuery{batchID: batchID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetBatchQuery) Validate() error {
	return q.guard.Validate(ErrGetBatchQueryIsNotConstructed)
}

func (q GetBatchQuery) BatchID() kernel.UUID {
	return q.batchID
}
