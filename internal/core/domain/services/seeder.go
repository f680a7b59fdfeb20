package services

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
)

var ErrNotEnoughPoints = errors.New("not enough points to seed centroids")

// Seeder chooses the initial centroids of a k-means run.
type Seeder interface {
	Seed(points []Point, k int) ([]kernel.GeoPoint, error)
}

// FirstKSeeder uses the coordinates of the first k input points. It is
// deterministic for a given input order; duplicated leading coordinates yield
// duplicated centroids, which simply leaves the later slots empty.
type FirstKSeeder struct{}

func (FirstKSeeder) Seed(points []Point, k int) ([]kernel.GeoPoint, error) {
	if k < 1 || k > len(points) {
		return nil, ErrNotEnoughPoints
	}

	centroids := make([]kernel.GeoPoint, k)
	for i := range k {
		centroids[i] = points[i].Location
	}
	return centroids, nil
}
