// Package kafka publishes change events to a Kafka topic through a sarama
// synchronous producer.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"restaurantcore/internal/events"
)

// DefaultTopic receives change events when no topic is configured.
const DefaultTopic = "restaurantcore.changes"

var _ events.Publisher = (*Publisher)(nil)

// Publisher sends each event as one message keyed by entity id, so changes to
// the same record land on the same partition in order.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewConfig returns the producer configuration used by NewPublisher.
func NewConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Retry.Backoff = 100 * time.Millisecond
	cfg.Producer.Return.Successes = true
	cfg.Net.DialTimeout = 10 * time.Second
	cfg.Net.ReadTimeout = 10 * time.Second
	cfg.Net.WriteTimeout = 10 * time.Second
	return cfg
}

// NewPublisher dials brokers and returns a publisher for topic.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka: no brokers configured")
	}
	producer, err := sarama.NewSyncProducer(brokers, NewConfig())
	if err != nil {
		return nil, fmt.Errorf("kafka: create producer: %w", err)
	}
	return NewPublisherWithProducer(producer, topic), nil
}

// NewPublisherWithProducer wraps an existing producer.
func NewPublisherWithProducer(producer sarama.SyncProducer, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{producer: producer, topic: topic}
}

// Topic returns the destination topic.
func (p *Publisher) Topic() string { return p.topic }

// Publish sends events as a single batch.
func (p *Publisher) Publish(ctx context.Context, evts []events.Event) error {
	if len(evts) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	msgs := make([]*sarama.ProducerMessage, 0, len(evts))
	for _, e := range evts {
		body, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("kafka: encode event %s: %w", e.ID, err)
		}
		msgs = append(msgs, &sarama.ProducerMessage{
			Topic:     p.topic,
			Key:       sarama.StringEncoder(e.EntityID),
			Value:     sarama.ByteEncoder(body),
			Timestamp: e.OccurredAt,
			Headers: []sarama.RecordHeader{
				{Key: []byte("entity"), Value: []byte(e.Entity)},
				{Key: []byte("action"), Value: []byte(e.Action)},
			},
		})
	}
	if err := p.producer.SendMessages(msgs); err != nil {
		return fmt.Errorf("kafka: send %d events to %s: %w", len(msgs), p.topic, err)
	}
	return nil
}

// Close flushes and closes the producer.
func (p *Publisher) Close() error {
	if p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
