package model

// OrderCreated is emitted after a confirm webhook persists a network
// order. Published to ondc.order.created and consumed by the audit
// writer and downstream order tooling.
type OrderCreated struct {
	OrderID       string  `json:"order_id"`
	StoreID       string  `json:"store_id"`
	ONDCOrderID   string  `json:"ondc_order_id,omitempty"`
	TransactionID string  `json:"transaction_id"`
	TotalAmount   float64 `json:"total_amount"`
	ItemCount     int     `json:"item_count"`
	Timestamp     string  `json:"timestamp"`
}

// CatalogSynced is emitted after a successful catalog sync. Published
// to ondc.catalog.synced.
type CatalogSynced struct {
	StoreID      string `json:"store_id"`
	ProductCount int    `json:"product_count"`
	SyncedAt     string `json:"synced_at"`
	Domain       string `json:"domain"`
}
