package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"ondc-seller-adapter/internal/model"
)

// Syncs is the append-only catalog sync audit trail. Records are
// prepended to a per-store list and never mutated; Latest reads the
// head.
type Syncs struct {
	rdb *redis.Client
}

func NewSyncs(rdb *redis.Client) *Syncs {
	return &Syncs{rdb: rdb}
}

func syncsKey(storeID string) string {
	return fmt.Sprintf("log:syncs:%s", storeID)
}

// Append adds one sync record to the store's audit trail.
func (s *Syncs) Append(ctx context.Context, rec model.SyncRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("store: encode sync record: %w", err)
	}
	if err := s.rdb.LPush(ctx, syncsKey(rec.StoreID), data).Err(); err != nil {
		return fmt.Errorf("store: append sync record: %w", err)
	}
	return nil
}

// Latest returns the most recent sync record or ErrNotFound.
func (s *Syncs) Latest(ctx context.Context, storeID string) (model.SyncRecord, error) {
	val, err := s.rdb.LIndex(ctx, syncsKey(storeID), 0).Result()
	if err == redis.Nil {
		return model.SyncRecord{}, ErrNotFound
	}
	if err != nil {
		return model.SyncRecord{}, fmt.Errorf("store: latest sync for %s: %w", storeID, err)
	}

	var rec model.SyncRecord
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return model.SyncRecord{}, fmt.Errorf("store: decode sync record: %w", err)
	}
	return rec, nil
}
