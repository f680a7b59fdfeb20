package eventbus

import (
	"context"
	"log/slog"

	"dispatch/internal/core/ports"
)

// LogPublisher records events in the log. It stands in for Kafka when no
// broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger.With("component", "event-log")}
}

func (p *LogPublisher) PublishBatchesCreated(ctx context.Context, events []ports.BatchCreatedEvent) error {
	for _, e := range events {
		p.logger.InfoContext(ctx, EventBatchCreated,
			"batch_id", e.BatchID,
			"orders", e.OrderCount,
			"total_weight", e.TotalWeight,
		)
	}
	return nil
}
