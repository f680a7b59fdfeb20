package services

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// Point is an order tagged with the coordinates used for clustering.
type Point struct {
	Order    *order.Order
	Location kernel.GeoPoint
}

// Cluster is a transient group of orders sharing a centroid. Orders keep the
// relative order they had in the partitioner input.
type Cluster struct {
	Centroid kernel.GeoPoint
	Orders   []*order.Order
}

// Weight sums the weights of the cluster's orders.
func (c Cluster) Weight() float64 {
	total := 0.0
	for _, o := range c.Orders {
		total += o.Weight()
	}
	return total
}

// PointsFromOrders tags each order with its resolved coordinates, preserving
// input order. Every order must already be located.
func PointsFromOrders(orders []*order.Order) ([]Point, error) {
	points := make([]Point, 0, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		loc := o.GeoPoint()
		if loc == nil {
			return nil, order.ErrGeoPointIsMissing
		}
		points = append(points, Point{Order: o, Location: *loc})
	}
	return points, nil
}
