package kstream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"ondc-seller-adapter/internal/model"
)

// Topics the adapter publishes to.
const (
	TopicOrderCreated  = "ondc.order.created"
	TopicCatalogSynced = "ondc.catalog.synced"
)

// Producer publishes adapter events to Kafka. Writers are built per
// publish and closed, matching the request-scoped lifetime of the
// calls that emit them.
type Producer struct {
	broker string
}

func NewProducer(broker string) *Producer {
	return &Producer{broker: broker}
}

// kafka.Writer handles batching and retries; RequireOne waits for the
// leader ack only, so publishes stay cheap on the webhook path.
func (p *Producer) writer(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(p.broker),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
	}
}

func (p *Producer) publish(ctx context.Context, topic string, key string, payload any) error {
	w := p.writer(topic)
	defer w.Close()

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("kstream: encode %s: %w", topic, err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}
	return w.WriteMessages(ctx, msg)
}

// PublishOrderCreated emits an order-created event keyed by store id so
// one store's orders stay ordered within a partition.
func (p *Producer) PublishOrderCreated(ctx context.Context, evt model.OrderCreated) error {
	return p.publish(ctx, TopicOrderCreated, evt.StoreID, evt)
}

// PublishCatalogSynced emits a catalog-synced event keyed by store id.
func (p *Producer) PublishCatalogSynced(ctx context.Context, evt model.CatalogSynced) error {
	return p.publish(ctx, TopicCatalogSynced, evt.StoreID, evt)
}
