// Package batch implements the Batch aggregate: a group of orders delivered
// together in one driver trip.
//
// A batch is created by batch generation with its member orders and total
// weight fixed for life. It starts PENDING, becomes IN_PROGRESS once a driver
// is assigned and COMPLETED when every member order is delivered. PENDING and
// IN_PROGRESS batches may be CANCELLED.
package batch
