package services_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T, weight float64) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "400001", "Gate 4, Dock Road", weight,
		order.Customer{Name: "Consignee", Phone: "9000000000"}, order.PaymentPrepaid, 0)
	require.NoError(t, err)
	return o
}

func locatedOrder(t *testing.T, lat, lng, weight float64) *order.Order {
	t.Helper()
	o := newOrder(t, weight)
	require.NoError(t, o.Locate(kernel.MustNewGeoPoint(lat, lng)))
	return o
}

func pointsOf(t *testing.T, orders ...*order.Order) []services.Point {
	t.Helper()
	points, err := services.PointsFromOrders(orders)
	require.NoError(t, err)
	return points
}

// indexesOf maps cluster members back to their position in the input.
func indexesOf(orders []*order.Order, members []*order.Order) []int {
	out := make([]int, 0, len(members))
	for _, m := range members {
		for i, o := range orders {
			if o == m {
				out = append(out, i)
				break
			}
		}
	}
	return out
}
