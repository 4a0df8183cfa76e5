package kstream

import (
	"time"

	"github.com/segmentio/kafka-go"
)

// NewReader creates a consumer-group reader for an adapter topic.
// Offsets auto-commit once per second.
func NewReader(broker, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
	})
}
