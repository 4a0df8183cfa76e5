package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"ondc-seller-adapter/internal/model"
)

// KYC reads and upserts per-store KYC records.
type KYC struct {
	rdb *redis.Client
}

func NewKYC(rdb *redis.Client) *KYC {
	return &KYC{rdb: rdb}
}

func kycKey(storeID string) string {
	return fmt.Sprintf("doc:kyc:%s", storeID)
}

// Get returns the store's KYC record or ErrNotFound.
func (k *KYC) Get(ctx context.Context, storeID string) (model.KYCRecord, error) {
	var doc model.KYCRecord
	if err := getJSON(ctx, k.rdb, kycKey(storeID), &doc); err != nil {
		return model.KYCRecord{}, err
	}
	return doc, nil
}

// Upsert writes the KYC record, replacing any previous submission for
// the same store.
func (k *KYC) Upsert(ctx context.Context, rec model.KYCRecord) error {
	return setJSON(ctx, k.rdb, kycKey(rec.StoreID), rec)
}
