package commands

import (
	"context"
	"log/slog"
)

// AssignDriverCommandHandler moves an open batch to IN_PROGRESS under a
// driver. Batch membership is left untouched.
//
// Business rules:
//   - the batch must exist and be PENDING or IN_PROGRESS (driver change)
//   - the driver must exist
type AssignDriverCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

func NewAssignDriverCommandHandler(uowFactory UoWFactory, logger *slog.Logger) AssignDriverCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "assign-driver"),
	}
}

func (h *AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	b, err := uow.BatchRepository().Get(ctx, cmd.BatchID())
	if err != nil {
		return err
	}

	d, err := uow.DriverRepository().Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	if err = b.AssignDriver(d.ID()); err != nil {
		return err
	}

	if err = uow.BatchRepository().Update(ctx, b); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "driver assigned",
		"batch_id", b.ID().String(),
		"driver_id", d.ID().String(),
		"orders", b.OrderCount(),
	)
	return nil
}
