package services

import (
	"dispatch/internal/core/domain/model/batch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// CapacitySplitter cuts a cluster into batches that respect Limits.
//
// Orders are walked in cluster order. The running batch is closed as soon as
// the next order would push it over either limit, and that order opens the
// next batch. An order heavier than MaxWeight on its own still forms a batch
// of one: it is the only batch allowed to exceed the weight limit.
type CapacitySplitter struct {
	newID func() kernel.UUID
}

func NewCapacitySplitter() CapacitySplitter {
	return CapacitySplitter{newID: kernel.NewUUID}
}

// Groups performs the split without creating batches.
func (s CapacitySplitter) Groups(cluster Cluster, limits Limits) ([][]*order.Order, error) {
	if err := limits.Validate(); err != nil {
		return nil, err
	}

	var (
		groups  [][]*order.Order
		current []*order.Order
		weight  float64
	)
	for _, o := range cluster.Orders {
		if len(current) > 0 &&
			(len(current)+1 > limits.MaxOrders || weight+o.Weight() > limits.MaxWeight) {
			groups = append(groups, current)
			current, weight = nil, 0
		}
		current = append(current, o)
		weight += o.Weight()
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	return groups, nil
}

// Split returns the PENDING batches for one cluster.
func (s CapacitySplitter) Split(cluster Cluster, limits Limits) ([]*batch.Batch, error) {
	groups, err := s.Groups(cluster, limits)
	if err != nil {
		return nil, err
	}

	newID := s.newID
	if newID == nil {
		newID = kernel.NewUUID
	}

	batches := make([]*batch.Batch, 0, len(groups))
	for _, g := range groups {
		b, err := batch.NewBatch(newID(), g)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, nil
}
