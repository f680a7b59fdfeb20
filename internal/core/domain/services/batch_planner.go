package services

import (
	"fmt"

	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// Partitioner groups located points into at most k clusters.
type Partitioner interface {
	Partition(points []Point, k int) (Partition, error)
}

// Plan is the result of planning one generation run.
type Plan struct {
	Batches []*batch.Batch
	// Clusters is the number of non-empty clusters found.
	Clusters int
	// Iterations and Converged describe the partitioning run.
	Iterations int
	Converged  bool
}

// OrderCount sums the orders over all planned batches.
func (p Plan) OrderCount() int {
	n := 0
	for _, b := range p.Batches {
		n += b.OrderCount()
	}
	return n
}

// BatchPlanner turns a snapshot of located PENDING orders into batches.
//
// Business rules:
//   - every order must be PENDING and carry coordinates
//   - k is ceil(len(orders) / limits.MaxOrders)
//   - each cluster is split independently by CapacitySplitter
//   - on success every order is ASSIGNED to exactly one planned batch
//
// The planner mutates the passed orders only when the whole plan succeeds.
//
// Example usage:
//
//	planner := services.NewBatchPlanner(services.NewKMeansPartitioner(), services.NewCapacitySplitter())
//	plan, err := planner.Plan(orders, services.DefaultLimits())
//	if err != nil {
//	    return err
//	}
//	for _, b := range plan.Batches {
//	    // persist b
//	}
type BatchPlanner struct {
	partitioner Partitioner
	splitter    CapacitySplitter
}

func NewBatchPlanner(partitioner Partitioner, splitter CapacitySplitter) BatchPlanner {
	if partitioner == nil {
		partitioner = NewKMeansPartitioner()
	}
	return BatchPlanner{partitioner: partitioner, splitter: splitter}
}

// Plan partitions and splits orders. An empty input yields an empty plan.
func (p BatchPlanner) Plan(orders []*order.Order, limits Limits) (Plan, error) {
	if err := limits.Validate(); err != nil {
		return Plan{}, err
	}
	if len(orders) == 0 {
		return Plan{Converged: true}, nil
	}

	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return Plan{}, err
		}
		if _, err := o.Status().Assign(); err != nil {
			return Plan{}, fmt.Errorf("order %s: %w", o.ID(), err)
		}
	}

	points, err := PointsFromOrders(orders)
	if err != nil {
		return Plan{}, err
	}

	partition, err := p.partitioner.Partition(points, limits.ClusterCount(len(orders)))
	if err != nil {
		return Plan{}, fmt.Errorf("partition orders: %w", err)
	}

	plan := Plan{
		Clusters:   len(partition.Clusters),
		Iterations: partition.Iterations,
		Converged:  partition.Converged,
	}
	for _, c := range partition.Clusters {
		batches, err := p.splitter.Split(c, limits)
		if err != nil {
			return Plan{}, fmt.Errorf("split cluster: %w", err)
		}
		plan.Batches = append(plan.Batches, batches...)
	}

	if got := plan.OrderCount(); got != len(orders) {
		return Plan{}, fmt.Errorf("planned %d orders out of %d", got, len(orders))
	}

	byID := make(map[kernel.UUID]*order.Order, len(orders))
	for _, o := range orders {
		byID[o.ID()] = o
	}
	for _, b := range plan.Batches {
		for _, id := range b.OrderIDs() {
			if err := byID[id].AssignTo(b.ID()); err != nil {
				return Plan{}, err
			}
		}
	}

	return plan, nil
}
