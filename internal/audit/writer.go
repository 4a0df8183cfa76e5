// Package audit consumes adapter events and appends them to dated
// JSONL files, giving operations a durable trail of every catalog sync
// and network order independent of the document store.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"ondc-seller-adapter/internal/kstream"
)

type Writer struct {
	broker string
	dir    string
	log    *zap.Logger
}

func NewWriter(broker, dir string, log *zap.Logger) *Writer {
	return &Writer{broker: broker, dir: dir, log: log}
}

// RunOrderLog consumes ondc.order.created until ctx is cancelled.
func (w *Writer) RunOrderLog(ctx context.Context) error {
	return w.consume(ctx, kstream.TopicOrderCreated, "audit-orders")
}

// RunSyncLog consumes ondc.catalog.synced until ctx is cancelled.
func (w *Writer) RunSyncLog(ctx context.Context) error {
	return w.consume(ctx, kstream.TopicCatalogSynced, "audit-syncs")
}

func (w *Writer) consume(ctx context.Context, topic, groupID string) error {
	reader := kstream.NewReader(w.broker, topic, groupID)
	defer reader.Close()

	w.log.Info("audit consumer started", zap.String("topic", topic))

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			return err
		}
		if err := w.append(topic, msg.Key, msg.Value); err != nil {
			w.log.Error("audit append failed", zap.String("topic", topic), zap.Error(err))
		}
	}
}

func (w *Writer) append(topic string, key, value []byte) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}

	fpath := filepath.Join(w.dir, fmt.Sprintf("%s_%s.jsonl", topic, time.Now().Format("2006-01-02")))
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	record := map[string]any{
		"topic":       topic,
		"key":         string(key),
		"event":       json.RawMessage(value),
		"received_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	_, err = f.Write(append(data, '\n'))
	return err
}
