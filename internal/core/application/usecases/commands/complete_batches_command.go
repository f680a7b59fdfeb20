package commands

import (
	"errors"
	"time"

	"dispatch/internal/pkg/guard"
)

var ErrCompleteBatchesCommandIsNotConstructed = errors.New(
	"CompleteBatchesCommand must be created via NewCompleteBatchesCommand constructor",
)

// CompleteBatchesCommand sweeps IN_PROGRESS batches and completes those whose
// orders have all been delivered.
type CompleteBatchesCommand struct {
	at time.Time

	guard guard.ConstructorGuard
}

// NewCompleteBatchesCommand uses at as the completion time; a zero value
// means the time of handling.
func NewCompleteBatchesCommand(at time.Time) CompleteBatchesCommand {
	return CompleteBatchesCommand{at: at, guard: guard.NewConstructorGuard()}
}

func (c CompleteBatchesCommand) Validate() error {
	return c.guard.Validate(ErrCompleteBatchesCommandIsNotConstructed)
}

func (c CompleteBatchesCommand) At() time.Time {
	if c.at.IsZero() {
		return time.Now()
	}
	return c.at
}
