package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"ondc-seller-adapter/internal/model"
)

// Products reads product documents for catalog projection.
type Products struct {
	rdb *redis.Client
}

func NewProducts(rdb *redis.Client) *Products {
	return &Products{rdb: rdb}
}

func productKey(productID string) string {
	return fmt.Sprintf("doc:product:%s", productID)
}

func activeIndex(storeID string) string {
	return fmt.Sprintf("idx:products:%s:active", storeID)
}

// ListActive returns the store's active products. The active index is
// maintained by the CRUD layer; is_active is re-checked on the
// document so a stale index entry cannot surface an inactive product.
func (p *Products) ListActive(ctx context.Context, storeID string) ([]model.Product, error) {
	ids, err := p.rdb.SMembers(ctx, activeIndex(storeID)).Result()
	if err != nil {
		return nil, fmt.Errorf("store: active index for %s: %w", storeID, err)
	}

	products := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		var doc model.Product
		if err := getJSON(ctx, p.rdb, productKey(id), &doc); err != nil {
			if err == ErrNotFound {
				continue
			}
			return nil, err
		}
		if !doc.IsActive {
			continue
		}
		products = append(products, doc)
	}
	return products, nil
}
