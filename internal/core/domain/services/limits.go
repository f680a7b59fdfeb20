package services

import (
	"errors"
	"math"

	"dispatch/internal/pkg/errs"
)

const (
	DefaultMaxOrdersPerBatch = 30
	DefaultMaxWeightPerBatch = 25.0
)

// Limits bounds the size of a single batch.
type Limits struct {
	// MaxOrders is the maximum number of orders in a batch.
	MaxOrders int
	// MaxWeight is the maximum total weight of a batch, in kilograms.
	MaxWeight float64
}

// DefaultLimits returns 30 orders and 25 kg per batch.
func DefaultLimits() Limits {
	return Limits{MaxOrders: DefaultMaxOrdersPerBatch, MaxWeight: DefaultMaxWeightPerBatch}
}

func (l Limits) Validate() error {
	var errMaxOrders, errMaxWeight error
	if l.MaxOrders < 1 {
		errMaxOrders = errs.NewValueIsOutOfRangeError("maxOrders", l.MaxOrders, 1, math.MaxInt)
	}
	if !(l.MaxWeight > 0) || math.IsInf(l.MaxWeight, 1) {
		errMaxWeight = errs.NewValueIsOutOfRangeError("maxWeight", l.MaxWeight, 0, math.MaxFloat64)
	}
	return errors.Join(errMaxOrders, errMaxWeight)
}

// ClusterCount is the k used for partitioning n orders: ceil(n / MaxOrders).
func (l Limits) ClusterCount(n int) int {
	if n <= 0 || l.MaxOrders < 1 {
		return 0
	}
	return (n + l.MaxOrders - 1) / l.MaxOrders
}
