package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/pkg/guard"
)

var ErrGetBatchesQueryIsNotConstructed = errors.New(
	"GetBatchesQuery must be created via NewGetBatchesQuery constructor",
)

// GetBatchesQuery lists batches newest first, optionally restricted to one
// status.
//
// Example:
//
//	query, err := NewGetBatchesQuery(&inProgress)
//	if err != nil {
//	    return err
//	}
//	batches, err := handler.Handle(ctx, query)
type GetBatchesQuery struct {
	status *batch.Status
	guard  guard.ConstructorGuard
}

// NewGetBatchesQuery accepts a nil status for "all batches".
func NewGetBatchesQuery(status *batch.Status) (GetBatchesQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetBatchesQuery{}, err
		}
		s := *status
		status = &s
	}

	return GetBatchesQuery{status: status, guard: guard.NewConstructorGuard()}, nil
}

func (q GetBatchesQuery) Validate() error {
	return q.guard.Validate(ErrGetBatchesQueryIsNotConstructed)
}

func (q GetBatchesQuery) Status() *batch.Status {
	return q.status
}
