package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"ondc-seller-adapter/internal/model"
)

const ondcEnabledIndex = "idx:stores:ondc_enabled"

// Stores reads store documents. The adapter never writes stores; the
// storefront CRUD layer owns them.
type Stores struct {
	rdb *redis.Client
}

func NewStores(rdb *redis.Client) *Stores {
	return &Stores{rdb: rdb}
}

func storeKey(storeID string) string {
	return fmt.Sprintf("doc:store:%s", storeID)
}

// GetByID returns the store document or ErrNotFound.
func (s *Stores) GetByID(ctx context.Context, storeID string) (model.Store, error) {
	var doc model.Store
	if err := getJSON(ctx, s.rdb, storeKey(storeID), &doc); err != nil {
		return model.Store{}, err
	}
	return doc, nil
}

// ListONDCEnabled returns every store flagged ondc_enabled. Stores
// whose index entry points at a missing document are skipped.
func (s *Stores) ListONDCEnabled(ctx context.Context) ([]model.Store, error) {
	ids, err := s.rdb.SMembers(ctx, ondcEnabledIndex).Result()
	if err != nil {
		return nil, fmt.Errorf("store: ondc_enabled index: %w", err)
	}

	stores := make([]model.Store, 0, len(ids))
	for _, id := range ids {
		var doc model.Store
		if err := getJSON(ctx, s.rdb, storeKey(id), &doc); err != nil {
			if err == ErrNotFound {
				continue
			}
			return nil, err
		}
		stores = append(stores, doc)
	}
	return stores, nil
}
