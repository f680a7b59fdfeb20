// Package order implements the Order aggregate of the dispatch domain.
//
// An order is created PENDING by a supervisor (manual entry or upload), is
// placed into exactly one batch by batch generation (ASSIGNED) and is finally
// DELIVERED by the driver carrying that batch.
//
// Key business rules:
//   - Orders have a valid identifier, a non-blank postal code and a positive weight
//   - Status follows Pending -> Assigned -> Delivered, with no way back
//   - Only PENDING orders are eligible for batching
//   - Coordinates are attached before assignment; an ASSIGNED order always
//     carries the batch it belongs to
package order
