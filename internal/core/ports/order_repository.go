package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListPending returns every PENDING order ordered by creation time, then
	// by identifier. Inside a transaction the rows are locked until commit so
	// that concurrent generation runs cannot consume the same orders.
	ListPending(ctx context.Context) ([]*order.Order, error)

	// MarkAssigned persists the batch reference, coordinates and ASSIGNED
	// status of orders that were PENDING in storage. It fails with
	// ErrConcurrentUpdate if any of them is no longer PENDING.
	MarkAssigned(ctx context.Context, orders []*order.Order) error

	// ListByBatch returns the orders of a batch ordered by creation time.
	ListByBatch(ctx context.Context, batchID kernel.UUID) ([]*order.Order, error)
}
