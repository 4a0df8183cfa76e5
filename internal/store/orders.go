package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"ondc-seller-adapter/internal/model"
)

// ErrDuplicateOrder is returned when an insert collides with an
// existing order id.
var ErrDuplicateOrder = errors.New("store: order already exists")

// Orders inserts and updates network orders. Ownership passes to the
// order-management subsystem after the confirm insert; the adapter only
// touches the status field afterwards.
type Orders struct {
	rdb *redis.Client
}

func NewOrders(rdb *redis.Client) *Orders {
	return &Orders{rdb: rdb}
}

func orderKey(orderID string) string {
	return fmt.Sprintf("doc:order:%s", orderID)
}

func storeOrdersIndex(storeID string) string {
	return fmt.Sprintf("idx:orders:%s", storeID)
}

// Insert writes the order as a single atomic SETNX so a replayed
// confirm cannot clobber an existing document.
func (o *Orders) Insert(ctx context.Context, order model.NetworkOrder) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("store: encode order %s: %w", order.OrderID, err)
	}

	ok, err := o.rdb.SetNX(ctx, orderKey(order.OrderID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("store: insert order %s: %w", order.OrderID, err)
	}
	if !ok {
		return ErrDuplicateOrder
	}

	if err := o.rdb.SAdd(ctx, storeOrdersIndex(order.StoreID), order.OrderID).Err(); err != nil {
		return fmt.Errorf("store: index order %s: %w", order.OrderID, err)
	}
	return nil
}

// Get returns the order document or ErrNotFound.
func (o *Orders) Get(ctx context.Context, orderID string) (model.NetworkOrder, error) {
	var doc model.NetworkOrder
	if err := getJSON(ctx, o.rdb, orderKey(orderID), &doc); err != nil {
		return model.NetworkOrder{}, err
	}
	return doc, nil
}

// UpdateStatus sets the order's status and returns the updated
// document.
func (o *Orders) UpdateStatus(ctx context.Context, orderID, status string) (model.NetworkOrder, error) {
	doc, err := o.Get(ctx, orderID)
	if err != nil {
		return model.NetworkOrder{}, err
	}
	doc.Status = status
	if err := setJSON(ctx, o.rdb, orderKey(orderID), doc); err != nil {
		return model.NetworkOrder{}, err
	}
	return doc, nil
}
