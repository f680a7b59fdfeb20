package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func pendingOrder(t *testing.T, postalCode string, weight float64) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), postalCode, "Plot 7, Station Road", weight,
		order.Customer{Name: "R. Iyer", Phone: "9000000001"}, order.PaymentUPI, 250)
	require.NoError(t, err)
	return o
}

// inProgressBatch returns a batch handed to a driver together with its
// assigned orders.
func inProgressBatch(t *testing.T, n int) (*batch.Batch, []*order.Order) {
	t.Helper()
	orders := make([]*order.Order, 0, n)
	for range n {
		o := pendingOrder(t, "400001", 1)
		require.NoError(t, o.Locate(kernel.MustNewGeoPoint(19.07, 72.87)))
		orders = append(orders, o)
	}
	b, err := batch.NewBatch(kernel.NewUUID(), orders)
	require.NoError(t, err)
	for _, o := range orders {
		require.NoError(t, o.AssignTo(b.ID()))
	}
	require.NoError(t, b.AssignDriver(kernel.NewUUID()))
	return b, orders
}

var deliveredAt = time.Date(2026, 3, 14, 17, 30, 0, 0, time.UTC)
