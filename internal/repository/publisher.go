package repository

import (
	"context"

	domrepo "InvestAgent/internal/domain/repository"
	pkgkafka "InvestAgent/pkg/kafka"
)

// KafkaPublisher fans domain events out through the shared Kafka producer.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPublisher wraps producer for publishing to topic.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e domrepo.Event) error {
	return p.producer.Publish(ctx, p.topic, []byte(e.Key), e)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher drops events. Used when event fan-out is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, e domrepo.Event) error { return nil }

func (NoopPublisher) Close() error { return nil }
