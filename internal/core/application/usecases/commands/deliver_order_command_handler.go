package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/order"
)

var (
	// ErrBatchIsNotInProgress is returned when delivering an order whose
	// batch has not been handed to a driver.
	ErrBatchIsNotInProgress = errors.New("batch is not in progress")

	ErrOrderIsNotBatched = errors.New("order does not belong to a batch")
)

// DeliverOrderCommandHandler marks an order DELIVERED and completes its batch
// when it was the last undelivered member.
type DeliverOrderCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

func NewDeliverOrderCommandHandler(uowFactory UoWFactory, logger *slog.Logger) DeliverOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "deliver-order"),
	}
}

// Handle returns true when the delivery completed the order's batch.
func (h *DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	batchRepo := uow.BatchRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return false, err
	}

	if o.Batch() == nil {
		return false, fmt.Errorf("order %s: %w", o.ID(), ErrOrderIsNotBatched)
	}

	b, err := batchRepo.Get(ctx, *o.Batch())
	if err != nil {
		return false, err
	}
	if b.Status() != batch.InProgress {
		return false, fmt.Errorf("%w: batch %s is %s", ErrBatchIsNotInProgress, b.ID(), b.Status())
	}

	if err = o.Deliver(cmd.DeliveredAt()); err != nil {
		return false, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return false, err
	}

	members, err := orderRepo.ListByBatch(ctx, b.ID())
	if err != nil {
		return false, err
	}

	completed := allDelivered(members)
	if completed {
		if err = b.Complete(cmd.DeliveredAt()); err != nil {
			return false, err
		}
		if err = batchRepo.Update(ctx, b); err != nil {
			return false, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	h.logger.InfoContext(ctx, "order delivered",
		"order_id", o.ID().String(),
		"batch_id", b.ID().String(),
		"batch_completed", completed,
	)
	return completed, nil
}

func allDelivered(orders []*order.Order) bool {
	if len(orders) == 0 {
		return false
	}
	for _, o := range orders {
		if o.Status() != order.Delivered {
			return false
		}
	}
	return true
}
