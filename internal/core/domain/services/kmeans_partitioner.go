package services

import (
	"fmt"
	"math"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultMaxIterations caps the assign/update rounds of a k-means run.
	DefaultMaxIterations = 20

	// DefaultEpsilon of zero means centroids converge only when they stop
	// moving exactly.
	DefaultEpsilon = 0.0
)

// Partition is the outcome of a k-means run.
type Partition struct {
	// Clusters holds the non-empty clusters in centroid slot order.
	Clusters []Cluster
	// Iterations is the number of assign/update rounds performed.
	Iterations int
	// Converged is false when the run stopped because of the iteration cap.
	Converged bool
}

// KMeansPartitioner groups points into at most k clusters by iterative
// centroid refinement using haversine distance.
//
// Assignment ties go to the lowest centroid index. Empty clusters keep their
// previous centroid and are dropped from the result.
type KMeansPartitioner struct {
	seeder        Seeder
	maxIterations int
	epsilon       float64
}

// PartitionerOption customises a KMeansPartitioner.
type PartitionerOption func(*KMeansPartitioner)

// WithSeeder replaces the FirstKSeeder default.
func WithSeeder(s Seeder) PartitionerOption {
	return func(p *KMeansPartitioner) {
		if s != nil {
			p.seeder = s
		}
	}
}

// WithMaxIterations sets the round cap; values below one are ignored.
func WithMaxIterations(n int) PartitionerOption {
	return func(p *KMeansPartitioner) {
		if n >= 1 {
			p.maxIterations = n
		}
	}
}

// WithEpsilon sets the per-coordinate movement (degrees) under which a
// centroid counts as unchanged. Negative values are ignored.
func WithEpsilon(eps float64) PartitionerOption {
	return func(p *KMeansPartitioner) {
		if eps >= 0 && !math.IsNaN(eps) {
			p.epsilon = eps
		}
	}
}

func NewKMeansPartitioner(opts ...PartitionerOption) KMeansPartitioner {
	p := KMeansPartitioner{
		seeder:        FirstKSeeder{},
		maxIterations: DefaultMaxIterations,
		epsilon:       DefaultEpsilon,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func (p KMeansPartitioner) MaxIterations() int {
	return p.maxIterations
}

func (p KMeansPartitioner) Epsilon() float64 {
	return p.epsilon
}

// Partition clusters points into at most k groups. k larger than the number
// of points is reduced to the number of points.
func (p KMeansPartitioner) Partition(points []Point, k int) (Partition, error) {
	if k < 1 {
		return Partition{}, errs.NewValueIsOutOfRangeError("k", k, 1, math.MaxInt)
	}
	if len(points) == 0 {
		return Partition{Converged: true}, nil
	}
	k = min(k, len(points))

	centroids, err := p.seeder.Seed(points, k)
	if err != nil {
		return Partition{}, fmt.Errorf("seed centroids: %w", err)
	}
	if len(centroids) != k {
		return Partition{}, fmt.Errorf("seeder returned %d centroids, want %d", len(centroids), k)
	}

	var (
		members   [][]int
		converged bool
		rounds    int
	)
	for rounds < p.maxIterations && !converged {
		rounds++
		members = assign(points, centroids)

		converged = true
		for i, idx := range members {
			if len(idx) == 0 {
				continue
			}
			next, meanErr := mean(points, idx)
			if meanErr != nil {
				return Partition{}, meanErr
			}
			if !p.same(centroids[i], next) {
				converged = false
			}
			centroids[i] = next
		}
	}

	clusters := make([]Cluster, 0, k)
	for i, idx := range members {
		if len(idx) == 0 {
			continue
		}
		orders := make([]*order.Order, len(idx))
		for j, pi := range idx {
			orders[j] = points[pi].Order
		}
		clusters = append(clusters, Cluster{Centroid: centroids[i], Orders: orders})
	}

	return Partition{Clusters: clusters, Iterations: rounds, Converged: converged}, nil
}

func (p KMeansPartitioner) same(a, b kernel.GeoPoint) bool {
	if p.epsilon == 0 {
		return a.IsEqual(b)
	}
	return scalar.EqualWithinAbs(a.Lat(), b.Lat(), p.epsilon) &&
		scalar.EqualWithinAbs(a.Lng(), b.Lng(), p.epsilon)
}

// assign returns, per centroid slot, the indexes of the points nearest to it.
func assign(points []Point, centroids []kernel.GeoPoint) [][]int {
	members := make([][]int, len(centroids))
	for pi, pt := range points {
		best, bestDist := 0, math.Inf(1)
		for ci, c := range centroids {
			if d := pt.Location.Distance(c); d < bestDist {
				best, bestDist = ci, d
			}
		}
		members[best] = append(members[best], pi)
	}
	return members
}

func mean(points []Point, idx []int) (kernel.GeoPoint, error) {
	lats := make([]float64, len(idx))
	lngs := make([]float64, len(idx))
	for j, pi := range idx {
		lats[j] = points[pi].Location.Lat()
		lngs[j] = points[pi].Location.Lng()
	}
	return kernel.NewGeoPoint(stat.Mean(lats, nil), stat.Mean(lngs, nil))
}
