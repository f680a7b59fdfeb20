// Package services contains the stateless domain services of batch
// generation.
//
// The package includes:
//   - KMeansPartitioner: groups geocoded orders into at most k spatial clusters
//   - Seeder / FirstKSeeder: pluggable centroid initialisation for the partitioner
//   - CapacitySplitter: cuts a cluster into batches bounded by order count and weight
//   - BatchPlanner: runs partitioning and splitting over a set of pending orders
//
// All services are deterministic: the same orders in the same order with the
// same coordinates always yield the same batches (batch identifiers aside).
// They perform no I/O; resolving coordinates and persisting batches belong to
// the application layer.
package services
