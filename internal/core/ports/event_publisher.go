package ports

import (
	"context"
	"time"
)

// BatchCreatedEvent announces a committed batch.
type BatchCreatedEvent struct {
	BatchID     string    `json:"batchId"`
	OrderIDs    []string  `json:"orderIds"`
	OrderCount  int       `json:"orderCount"`
	TotalWeight float64   `json:"totalWeight"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EventPublisher delivers integration events after the transaction that
// produced them has committed.
type EventPublisher interface {
	PublishBatchesCreated(ctx context.Context, events []BatchCreatedEvent) error
}
