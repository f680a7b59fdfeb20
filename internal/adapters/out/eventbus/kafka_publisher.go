// Package eventbus publishes dispatch integration events.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const (
	EventBatchCreated = "batch.created"
	DefaultTopic      = "dispatch.batches"
)

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter returns a synchronous writer that waits for the leader ack.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		BatchTimeout: 50 * time.Millisecond,
	}
}

// KafkaPublisher writes one JSON message per event, keyed by batch id so
// that all events of a batch land on the same partition.
type KafkaPublisher struct {
	writer MessageWriter
	logger *slog.Logger
}

func NewKafkaPublisher(writer MessageWriter, logger *slog.Logger) *KafkaPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaPublisher{writer: writer, logger: logger.With("component", "kafka-publisher")}
}

type envelope struct {
	Type    string                  `json:"type"`
	Payload ports.BatchCreatedEvent `json:"payload"`
}

func (p *KafkaPublisher) PublishBatchesCreated(ctx context.Context, events []ports.BatchCreatedEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		value, err := json.Marshal(envelope{Type: EventBatchCreated, Payload: e})
		if err != nil {
			return fmt.Errorf("encode %s event for batch %s: %w", EventBatchCreated, e.BatchID, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(e.BatchID),
			Value: value,
			Headers: []kafka.Header{
				{Key: "event-type", Value: []byte(EventBatchCreated)},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish %d %s events: %w", len(msgs), EventBatchCreated, err)
	}

	p.logger.DebugContext(ctx, "events published", "type", EventBatchCreated, "count", len(msgs))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
