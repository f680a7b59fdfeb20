package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetBatchStatsQueryIsNotConstructed = errors.New(
	"GetBatchStatsQuery must be created via NewGetBatchStatsQuery constructor",
)

// GetBatchStatsQuery summarizes batches for the supervisor dashboard.
type GetBatchStatsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetBatchStatsQuery() GetBatchStatsQuery {
	return GetBatchStatsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetBatchStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetBatchStatsQueryIsNotConstructed)
}

// GetBatchStatsQueryResponse counts batches per status. ByStatus carries an
// entry for every batch status, zero included.
type GetBatchStatsQueryResponse struct {
	Total         int
	ByStatus      map[string]int
	TotalWeight   float64
	PendingOrders int
}
