package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/kernel"
)

// CompleteBatchesCommandHandler repairs batches left IN_PROGRESS although
// every order was delivered, for instance by deliveries recorded outside
// DeliverOrderCommandHandler.
type CompleteBatchesCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

func NewCompleteBatchesCommandHandler(uowFactory UoWFactory, logger *slog.Logger) CompleteBatchesCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return CompleteBatchesCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "complete-batches"),
	}
}

// Handle returns the identifiers of the batches it completed.
func (h *CompleteBatchesCommandHandler) Handle(ctx context.Context, cmd CompleteBatchesCommand) ([]kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	batchRepo := uow.BatchRepository()
	orderRepo := uow.OrderRepository()

	open, err := batchRepo.ListByStatus(ctx, batch.InProgress)
	if err != nil {
		return nil, err
	}

	at := cmd.At()
	completed := make([]kernel.UUID, 0)
	for _, b := range open {
		members, listErr := orderRepo.ListByBatch(ctx, b.ID())
		if listErr != nil {
			return nil, listErr
		}
		if !allDelivered(members) {
			continue
		}

		if err = b.Complete(at); err != nil {
			return nil, err
		}
		if err = batchRepo.Update(ctx, b); err != nil {
			return nil, err
		}
		completed = append(completed, b.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if len(completed) > 0 {
		h.logger.InfoContext(ctx, "batches completed", "count", len(completed), "checked", len(open))
	}
	return completed, nil
}
