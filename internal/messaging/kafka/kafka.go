package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"

	"github.com/CameronXie/storefront/internal/messaging"
)

const (
	DefaultWriteTimeout = 10 * time.Second
	// DefaultBatchTimeout bounds how long a single event waits for a batch to fill.
	DefaultBatchTimeout = 5 * time.Millisecond
)

// Publisher publishes JSON encoded events to Kafka through a single long-lived writer.
type Publisher struct {
	writer *kafkaGo.Writer
}

var _ messaging.Publisher = (*Publisher)(nil)

// NewPublisher creates a Publisher for the given brokers. The topic is chosen per event.
func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(brokers...),
			Balancer:               &kafkaGo.Hash{},
			RequiredAcks:           kafkaGo.RequireAll,
			WriteTimeout:           DefaultWriteTimeout,
			BatchTimeout:           DefaultBatchTimeout,
			BatchSize:              1,
			AllowAutoTopicCreation: true,
		},
	}
}

// PublishEvent encodes event as JSON and writes it to topic under key.
func (p *Publisher) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg, err := newMessage(topic, key, payload)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to %s: %w", topic, err)
	}

	return nil
}

// Close flushes pending messages and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func newMessage(topic string, key string, payload []byte) (kafkaGo.Message, error) {
	if topic == "" {
		return kafkaGo.Message{}, fmt.Errorf("topic cannot be empty")
	}

	return kafkaGo.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	}, nil
}
