// Package store holds the Redis-backed document repositories the
// adapter reads from and writes to. Documents are JSON values keyed by
// collection and id, with set indexes for the lookups the adapter
// needs (ONDC-enabled stores, active products per store). Only the
// document fields themselves are stored; there is no row identifier to
// leak into responses.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("store: document not found")

// NewClient creates the Redis client shared by all repositories.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

func getJSON(ctx context.Context, rdb *redis.Client, key string, out any) error {
	val, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("store: get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return fmt.Errorf("store: decode %s: %w", key, err)
	}
	return nil
}

func setJSON(ctx context.Context, rdb *redis.Client, key string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := rdb.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("store: set %s: %w", key, err)
	}
	return nil
}
