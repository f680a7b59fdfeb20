package batch

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch constructor")
	ErrBatchIsEmpty          = errs.NewValueIsRequiredError("batch orders")
	ErrDuplicateOrder        = errors.New("order appears twice in batch")
)

// Batch is the aggregate root for a delivery trip.
//
// Invariants:
//   - at least one order, no order twice
//   - TotalWeight equals the sum of member weights at creation
//   - membership never changes after creation
//   - IN_PROGRESS and COMPLETED batches have a driver
type Batch struct {
	id              kernel.UUID
	orderIDs        []kernel.UUID
	totalWeight     float64
	driverID        *kernel.UUID
	status          Status
	createdAt       time.Time
	completedAt     *time.Time
	completionNotes string
	guard           guard.ConstructorGuard
}

// NewBatch groups orders into a PENDING batch and computes its total weight.
func NewBatch(id kernel.UUID, orders []*order.Order) (*Batch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrBatchIsEmpty
	}

	ids := make([]kernel.UUID, 0, len(orders))
	seen := make(map[kernel.UUID]struct{}, len(orders))
	total := 0.0
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[o.ID()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateOrder, o.ID())
		}
		seen[o.ID()] = struct{}{}
		ids = append(ids, o.ID())
		total += o.Weight()
	}

	return &Batch{
		id:          id,
		orderIDs:    ids,
		totalWeight: total,
		status:      Pending,
		createdAt:   time.Now().UTC(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Snapshot carries persisted batch state for RestoreBatch.
type Snapshot struct {
	ID              kernel.UUID
	OrderIDs        []kernel.UUID
	TotalWeight     float64
	DriverID        *kernel.UUID
	Status          Status
	CreatedAt       time.Time
	CompletedAt     *time.Time
	CompletionNotes string
}

// RestoreBatch rebuilds a batch loaded from storage.
func RestoreBatch(s Snapshot) (*Batch, error) {
	if err := errors.Join(s.ID.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}
	if len(s.OrderIDs) == 0 {
		return nil, ErrBatchIsEmpty
	}
	if s.DriverID == nil && (s.Status == InProgress || s.Status == Completed) {
		return nil, errs.NewValueIsRequiredErrorWithCause("driver", fmt.Errorf("%s batch has no driver", s.Status))
	}

	ids := make([]kernel.UUID, len(s.OrderIDs))
	copy(ids, s.OrderIDs)

	return &Batch{
		id:              s.ID,
		orderIDs:        ids,
		totalWeight:     s.TotalWeight,
		driverID:        s.DriverID,
		status:          s.Status,
		createdAt:       s.CreatedAt,
		completedAt:     s.CompletedAt,
		completionNotes: s.CompletionNotes,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (b *Batch) Validate() error {
	if b == nil {
		return ErrBatchIsNotConstructed
	}
	return b.guard.Validate(ErrBatchIsNotConstructed)
}

func (b *Batch) ID() kernel.UUID {
	return b.id
}

// OrderIDs returns a copy of the member order identifiers in batch order.
func (b *Batch) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(b.orderIDs))
	copy(ids, b.orderIDs)
	return ids
}

func (b *Batch) OrderCount() int {
	return len(b.orderIDs)
}

// TotalWeight is the sum of member weights in kilograms.
func (b *Batch) TotalWeight() float64 {
	return b.totalWeight
}

// Driver returns the assigned driver, or nil.
func (b *Batch) Driver() *kernel.UUID {
	return b.driverID
}

func (b *Batch) Status() Status {
	return b.status
}

func (b *Batch) CreatedAt() time.Time {
	return b.createdAt
}

func (b *Batch) CompletedAt() *time.Time {
	return b.completedAt
}

func (b *Batch) CompletionNotes() string {
	return b.completionNotes
}

// Contains reports whether the order is a member of the batch.
func (b *Batch) Contains(orderID kernel.UUID) bool {
	for _, id := range b.orderIDs {
		if id.IsEqual(orderID) {
			return true
		}
	}
	return false
}

// AssignDriver hands the batch to a driver. A driver may be replaced while
// the batch is still open.
func (b *Batch) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	next, err := b.status.start()
	if err != nil {
		return err
	}

	b.status = next
	b.driverID = &driverID
	return nil
}

// Complete closes an IN_PROGRESS batch once all of its orders are delivered.
func (b *Batch) Complete(at time.Time) error {
	next, err := b.status.complete()
	if err != nil {
		return err
	}

	at = at.UTC()
	b.status = next
	b.completedAt = &at
	b.completionNotes = fmt.Sprintf("All %d orders delivered successfully", len(b.orderIDs))
	return nil
}

// Cancel abandons an open batch.
func (b *Batch) Cancel() error {
	next, err := b.status.cancel()
	if err != nil {
		return err
	}

	b.status = next
	return nil
}
