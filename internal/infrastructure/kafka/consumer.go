package kafka

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/example/storefront/internal/event"
)

// EnvelopeHandler processes one decoded event envelope.
type EnvelopeHandler func(ctx context.Context, env event.Envelope) error

// Consumer reads storefront event envelopes from a topic as part of a
// consumer group. Malformed payloads are logged and skipped so one bad
// message cannot wedge the group.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	return &Consumer{reader: reader}
}

// Consume reads envelopes until the context is canceled, handing each to
// handler. Handler errors are logged, not fatal.
func (c *Consumer) Consume(ctx context.Context, handler EnvelopeHandler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Printf("[Kafka] failed to read message: %v", err)
				continue
			}

			var env event.Envelope
			if err := json.Unmarshal(msg.Value, &env); err != nil {
				log.Printf("[Kafka] skipping malformed envelope at offset %d: %v", msg.Offset, err)
				continue
			}

			if err := handler(ctx, env); err != nil {
				log.Printf("[Kafka] failed to handle %s event %s: %v", env.Type, env.ID, err)
			}
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
