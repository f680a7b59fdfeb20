package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/metrics"
)

// PostalCodeResolver resolves a set of postal codes, failing as a whole when
// any of them cannot be resolved.
type PostalCodeResolver interface {
	ResolveAll(ctx context.Context, postalCodes []string) (map[string]kernel.GeoPoint, error)
}

// GenerateBatchesResult describes a committed generation run.
type GenerateBatchesResult struct {
	Batches    []*batch.Batch
	OrderCount int
	Clusters   int
	Iterations int
	Converged  bool
	Limits     services.Limits
}

// GenerateBatchesCommandHandler runs batch generation:
//
//  1. lock and load every PENDING order
//  2. resolve the distinct postal codes and locate the orders
//  3. partition with k = ceil(orders / maxOrders) and split by capacity
//  4. persist the batches and mark their orders ASSIGNED
//
// Steps 1-4 share one transaction: any failure, including a single postal
// code that cannot be geocoded, leaves storage untouched. Runs inside one
// process are serialized; row locks on the pending orders keep concurrent
// processes from consuming the same orders. Events are published only after
// commit, and a publishing failure does not undo the run.
type GenerateBatchesCommandHandler struct {
	uowFactory UoWFactory
	resolver   PostalCodeResolver
	planner    services.BatchPlanner
	defaults   services.Limits
	publisher  ports.EventPublisher
	metrics    *metrics.Dispatch
	logger     *slog.Logger
	running    chan struct{}
}

type GenerateBatchesOption func(*GenerateBatchesCommandHandler)

func WithEventPublisher(p ports.EventPublisher) GenerateBatchesOption {
	return func(h *GenerateBatchesCommandHandler) { h.publisher = p }
}

func WithMetrics(m *metrics.Dispatch) GenerateBatchesOption {
	return func(h *GenerateBatchesCommandHandler) { h.metrics = m }
}

func WithLogger(logger *slog.Logger) GenerateBatchesOption {
	return func(h *GenerateBatchesCommandHandler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

func NewGenerateBatchesCommandHandler(
	uowFactory UoWFactory,
	resolver PostalCodeResolver,
	planner services.BatchPlanner,
	defaults services.Limits,
	opts ...GenerateBatchesOption,
) (*GenerateBatchesCommandHandler, error) {
	if err := defaults.Validate(); err != nil {
		return nil, fmt.Errorf("default batch limits: %w", err)
	}

	h := &GenerateBatchesCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		planner:    planner,
		defaults:   defaults,
		logger:     slog.Default(),
		running:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With("component", "batch-generation")

	return h, nil
}

// Handle performs one generation run. It waits for a run already in progress
// to finish, or for ctx to be done.
func (h *GenerateBatchesCommandHandler) Handle(ctx context.Context, cmd GenerateBatchesCommand) (GenerateBatchesResult, error) {
	if err := cmd.Validate(); err != nil {
		return GenerateBatchesResult{}, err
	}

	limits := cmd.Limits(h.defaults)
	if err := limits.Validate(); err != nil {
		return GenerateBatchesResult{}, err
	}

	select {
	case h.running <- struct{}{}:
	case <-ctx.Done():
		return GenerateBatchesResult{}, ctx.Err()
	}
	defer func() { <-h.running }()

	start := time.Now()
	result, err := h.run(ctx, limits)
	elapsed := time.Since(start)

	switch {
	case err != nil:
		h.metrics.RunFinished(metrics.OutcomeFailure, elapsed, 0, 0)
		h.logger.ErrorContext(ctx, "batch generation failed", "error", err, "duration", elapsed)
		return GenerateBatchesResult{}, err
	case len(result.Batches) == 0:
		h.metrics.RunFinished(metrics.OutcomeEmpty, elapsed, 0, 0)
		h.logger.InfoContext(ctx, "no pending orders")
		return result, nil
	}

	h.metrics.RunFinished(metrics.OutcomeSuccess, elapsed, len(result.Batches), result.OrderCount)
	h.logger.InfoContext(ctx, "batches generated",
		"batches", len(result.Batches),
		"orders", result.OrderCount,
		"clusters", result.Clusters,
		"iterations", result.Iterations,
		"converged", result.Converged,
		"duration", elapsed,
	)

	h.publish(ctx, result.Batches)
	return result, nil
}

func (h *GenerateBatchesCommandHandler) run(ctx context.Context, limits services.Limits) (GenerateBatchesResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return GenerateBatchesResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	pending, err := orderRepo.ListPending(ctx)
	if err != nil {
		return GenerateBatchesResult{}, fmt.Errorf("list pending orders: %w", err)
	}
	if len(pending) == 0 {
		return GenerateBatchesResult{Limits: limits, Converged: true}, uow.Commit(ctx)
	}

	codes := make([]string, len(pending))
	for i, o := range pending {
		codes[i] = o.PostalCode()
	}
	points, err := h.resolver.ResolveAll(ctx, codes)
	if err != nil {
		return GenerateBatchesResult{}, err
	}
	for _, o := range pending {
		p, ok := points[o.PostalCode()]
		if !ok {
			return GenerateBatchesResult{}, ports.NewGeocodeFailureError(o.PostalCode(), nil)
		}
		if err = o.Locate(p); err != nil {
			return GenerateBatchesResult{}, err
		}
	}

	plan, err := h.planner.Plan(pending, limits)
	if err != nil {
		return GenerateBatchesResult{}, err
	}

	batchRepo := uow.BatchRepository()
	for _, b := range plan.Batches {
		if err = batchRepo.Add(ctx, b); err != nil {
			return GenerateBatchesResult{}, fmt.Errorf("add batch %s: %w", b.ID(), err)
		}
	}

	if err = orderRepo.MarkAssigned(ctx, pending); err != nil {
		return GenerateBatchesResult{}, fmt.Errorf("mark orders assigned: %w", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return GenerateBatchesResult{}, err
	}

	return GenerateBatchesResult{
		Batches:    plan.Batches,
		OrderCount: plan.OrderCount(),
		Clusters:   plan.Clusters,
		Iterations: plan.Iterations,
		Converged:  plan.Converged,
		Limits:     limits,
	}, nil
}

func (h *GenerateBatchesCommandHandler) publish(ctx context.Context, batches []*batch.Batch) {
	if h.publisher == nil {
		return
	}

	events := make([]ports.BatchCreatedEvent, 0, len(batches))
	for _, b := range batches {
		ids := b.OrderIDs()
		orderIDs := make([]string, len(ids))
		for i, id := range ids {
			orderIDs[i] = id.String()
		}
		events = append(events, ports.BatchCreatedEvent{
			BatchID:     b.ID().String(),
			OrderIDs:    orderIDs,
			OrderCount:  len(orderIDs),
			TotalWeight: b.TotalWeight(),
			CreatedAt:   b.CreatedAt(),
		})
	}

	if err := h.publisher.PublishBatchesCreated(ctx, events); err != nil {
		h.logger.ErrorContext(ctx, "failed to publish batch events", "error", err, "batches", len(events))
	}
}
