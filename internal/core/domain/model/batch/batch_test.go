package batch_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

func newOrders(t *testing.T, weights ...float64) []*order.Order {
	t.Helper()
	orders := make([]*order.Order, 0, len(weights))
	for _, w := range weights {
		o, err := order.NewOrder(kernel.NewUUID(), "400001", "addr", w,
			order.Customer{Name: "C", Phone: "1"}, order.PaymentPrepaid, 0)
		require.NoError(t, err)
		orders = append(orders, o)
	}
	return orders
}

func TestNewBatch(t *testing.T) {
	t.Run("sums member weights", func(t *testing.T) {
		orders := newOrders(t, 2, 3.5, 4)

		b, err := batch.NewBatch(kernel.NewUUID(), orders)

		require.NoError(t, err)
		require.NoError(t, b.Validate())
		assert.InDelta(t, 9.5, b.TotalWeight(), 1e-9)
		assert.Equal(t, 3, b.OrderCount())
		assert.Equal(t, batch.Pending, b.Status())
		assert.Nil(t, b.Driver())
		for i, id := range b.OrderIDs() {
			assert.True(t, orders[i].ID().IsEqual(id))
		}
	})

	t.Run("empty batch is rejected", func(t *testing.T) {
		_, err := batch.NewBatch(kernel.NewUUID(), nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("duplicate order is rejected", func(t *testing.T) {
		orders := newOrders(t, 1)

		_, err := batch.NewBatch(kernel.NewUUID(), []*order.Order{orders[0], orders[0]})

		require.ErrorIs(t, err, batch.ErrDuplicateOrder)
	})

	t.Run("nil id is rejected", func(t *testing.T) {
		_, err := batch.NewBatch(kernel.UUID{}, newOrders(t, 1))

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestBatch_OrderIDsAreImmutable(t *testing.T) {
	b, err := batch.NewBatch(kernel.NewUUID(), newOrders(t, 1, 1))
	require.NoError(t, err)

	ids := b.OrderIDs()
	ids[0] = kernel.NewUUID()

	assert.False(t, ids[0].IsEqual(b.OrderIDs()[0]))
	assert.True(t, b.Contains(b.OrderIDs()[0]))
	assert.False(t, b.Contains(ids[0]))
}

func TestBatch_Lifecycle(t *testing.T) {
	driverID := kernel.NewUUID()
	at := time.Date(2026, 5, 1, 18, 30, 0, 0, time.UTC)

	t.Run("pending batch cannot be completed", func(t *testing.T) {
		b, _ := batch.NewBatch(kernel.NewUUID(), newOrders(t, 1))

		require.ErrorIs(t, b.Complete(at), errs.ErrValueIsInvalid)
	})

	t.Run("assign then complete", func(t *testing.T) {
		b, _ := batch.NewBatch(kernel.NewUUID(), newOrders(t, 1, 2))

		require.NoError(t, b.AssignDriver(driverID))
		assert.Equal(t, batch.InProgress, b.Status())
		assert.True(t, driverID.IsEqual(*b.Driver()))

		require.NoError(t, b.Complete(at))
		assert.Equal(t, batch.Completed, b.Status())
		assert.Equal(t, at, *b.CompletedAt())
		assert.Equal(t, "All 2 orders delivered successfully", b.CompletionNotes())
	})

	t.Run("driver can be replaced while in progress", func(t *testing.T) {
		b, _ := batch.NewBatch(kernel.NewUUID(), newOrders(t, 1))
		require.NoError(t, b.AssignDriver(driverID))
		other := kernel.NewUUID()

		require.NoError(t, b.AssignDriver(other))
		assert.True(t, other.IsEqual(*b.Driver()))
	})

	t.Run("completed batch is closed", func(t *testing.T) {
		b, _ := batch.NewBatch(kernel.NewUUID(), newOrders(t, 1))
		require.NoError(t, b.AssignDriver(driverID))
		require.NoError(t, b.Complete(at))

		require.Error(t, b.AssignDriver(kernel.NewUUID()))
		require.Error(t, b.Cancel())
	})

	t.Run("pending batch can be cancelled", func(t *testing.T) {
		b, _ := batch.NewBatch(kernel.NewUUID(), newOrders(t, 1))

		require.NoError(t, b.Cancel())
		assert.Equal(t, batch.Cancelled, b.Status())
		require.Error(t, b.AssignDriver(driverID))
	})
}

func TestRestoreBatch(t *testing.T) {
	driverID := kernel.NewUUID()

	t.Run("valid snapshot", func(t *testing.T) {
		b, err := batch.RestoreBatch(batch.Snapshot{
			ID:          kernel.NewUUID(),
			OrderIDs:    []kernel.UUID{kernel.NewUUID()},
			TotalWeight: 4,
			DriverID:    &driverID,
			Status:      batch.InProgress,
		})

		require.NoError(t, err)
		assert.Equal(t, batch.InProgress, b.Status())
	})

	t.Run("in progress without driver", func(t *testing.T) {
		_, err := batch.RestoreBatch(batch.Snapshot{
			ID:       kernel.NewUUID(),
			OrderIDs: []kernel.UUID{kernel.NewUUID()},
			Status:   batch.InProgress,
		})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := batch.RestoreBatch(batch.Snapshot{
			ID:       kernel.NewUUID(),
			OrderIDs: []kernel.UUID{kernel.NewUUID()},
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "IN_PROGRESS", batch.InProgress.String())
	assert.Equal(t, "UNKNOWN", batch.Unknown.String())
	assert.True(t, batch.Pending.IsOpen())
	assert.False(t, batch.Completed.IsOpen())
	assert.Len(t, batch.Statuses(), 4)
}

func TestParseStatus(t *testing.T) {
	for _, s := range batch.Statuses() {
		parsed, err := batch.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := batch.ParseStatus("LOST")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
