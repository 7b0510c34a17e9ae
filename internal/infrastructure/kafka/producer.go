package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/example/storefront/internal/event"
)

// Producer publishes storefront event envelopes to a single topic.
type Producer struct {
	writer *kafka.Writer
}

var _ event.Publisher = (*Producer)(nil)

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Producer{writer: writer}
}

// Publish serializes the envelope and writes it keyed by the given key
// (contact for OTP events, user id for payment events) so events for one
// party stay ordered.
func (p *Producer) Publish(ctx context.Context, key string, env event.Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal %s envelope: %w", env.Type, err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(env.Type)},
		},
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
