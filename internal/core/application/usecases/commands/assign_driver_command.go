package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand hands a batch to a driver.
//
// Example:
//
//	cmd, err := NewAssignDriverCommand(batchID, driverID)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to assign driver: %w", err)
//	}
type AssignDriverCommand struct {
	batchID  kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignDriverCommand(batchID, driverID kernel.UUID) (AssignDriverCommand, error) {
	if err := errors.Join(batchID.Validate(), driverID.Validate()); err != nil {
		return AssignDriverCommand{}, err
	}

	return AssignDriverCommand{
		batchID:  batchID,
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c AssignDriverCommand) BatchID() kernel.UUID {
	return c.batchID
}

func (c AssignDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}
