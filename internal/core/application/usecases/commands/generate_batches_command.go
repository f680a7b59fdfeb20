package commands

import (
	"errors"
	"math"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGenerateBatchesCommandIsNotConstructed = errors.New(
	"GenerateBatchesCommand must be created via NewGenerateBatchesCommand constructor",
)

// GenerateBatchesCommand starts one batch generation run over all PENDING
// orders. Zero limits fall back to the handler's configured defaults.
//
// Example:
//
//	cmd, err := NewGenerateBatchesCommand(0, 0) // configured limits
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("batch generation failed: %w", err)
//	}
//	fmt.Printf("%d batches created\n", len(result.Batches))
type GenerateBatchesCommand struct {
	maxOrders int
	maxWeight float64

	guard guard.ConstructorGuard
}

func NewGenerateBatchesCommand(maxOrders int, maxWeight float64) (GenerateBatchesCommand, error) {
	var errMaxOrders, errMaxWeight error
	if maxOrders < 0 {
		errMaxOrders = errs.NewValueIsOutOfRangeError("maxOrders", maxOrders, 0, math.MaxInt)
	}
	if maxWeight < 0 || math.IsNaN(maxWeight) || math.IsInf(maxWeight, 0) {
		errMaxWeight = errs.NewValueIsOutOfRangeError("maxWeight", maxWeight, 0, math.MaxFloat64)
	}
	if err := errors.Join(errMaxOrders, errMaxWeight); err != nil {
		return GenerateBatchesCommand{}, err
	}

	return GenerateBatchesCommand{
		maxOrders: maxOrders,
		maxWeight: maxWeight,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c GenerateBatchesCommand) Validate() error {
	return c.guard.Validate(ErrGenerateBatchesCommandIsNotConstructed)
}

// Limits overlays the command's non-zero limits on defaults.
func (c GenerateBatchesCommand) Limits(defaults services.Limits) services.Limits {
	limits := defaults
	if c.maxOrders > 0 {
		limits.MaxOrders = c.maxOrders
	}
	if c.maxWeight > 0 {
		limits.MaxWeight = c.maxWeight
	}
	return limits
}
