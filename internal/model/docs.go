package model

import "time"

// Documents owned by the storefront CRUD layer. The adapter only reads
// stores/products/KYC and inserts orders and sync records; everything
// else about these collections lives outside this service.

type Store struct {
	StoreID     string       `json:"store_id"`
	UserID      string       `json:"user_id,omitempty"`
	StoreName   string       `json:"store_name"`
	Subdomain   string       `json:"subdomain"`
	Description string       `json:"description,omitempty"`
	Category    string       `json:"category,omitempty"`
	LogoURL     string       `json:"logo_url,omitempty"`
	Address     StoreAddress `json:"address"`
	Phone       string       `json:"phone,omitempty"`
	ONDCEnabled bool         `json:"ondc_enabled"`
	CreatedAt   time.Time    `json:"created_at"`
}

// StoreAddress carries the coordinates and postal fields the catalog
// projection publishes as the provider location. These are real store
// fields, not projection-time placeholders.
type StoreAddress struct {
	GPS      string `json:"gps"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	AreaCode string `json:"area_code"`
}

type Product struct {
	ProductID   string    `json:"product_id"`
	StoreID     string    `json:"store_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Images      []string  `json:"images,omitempty"`
	Category    string    `json:"category,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	KYCStatusPending  = "pending"
	KYCStatusVerified = "verified"
	KYCStatusRejected = "rejected"
)

type KYCRecord struct {
	StoreID           string     `json:"store_id"`
	GSTIN             string     `json:"gstin"`
	PAN               string     `json:"pan"`
	BankAccount       string     `json:"bank_account"`
	BankIFSC          string     `json:"bank_ifsc"`
	BankName          string     `json:"bank_name"`
	AccountHolderName string     `json:"account_holder_name"`
	Status            string     `json:"status"`
	SubmittedAt       time.Time  `json:"submitted_at"`
	VerifiedAt        *time.Time `json:"verified_at,omitempty"`
}

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// NetworkOrder is an order that arrived over the network. Its id is
// minted locally; the buyer app's own order id is kept as a reference.
// After the confirm insert the regular order-management subsystem owns
// the document.
type NetworkOrder struct {
	OrderID       string         `json:"order_id"`
	StoreID       string         `json:"store_id"`
	Source        string         `json:"source"`
	ONDCOrderID   string         `json:"ondc_order_id,omitempty"`
	CustomerName  string         `json:"customer_name"`
	CustomerPhone string         `json:"customer_phone"`
	CustomerEmail string         `json:"customer_email,omitempty"`
	Items         []SelectedItem `json:"items"`
	TotalAmount   float64        `json:"total_amount"`
	Status        string         `json:"status"`
	PaymentStatus string         `json:"payment_status"`
	CreatedAt     time.Time      `json:"created_at"`
}

// SyncRecord is one entry in the append-only catalog sync audit trail.
// Payload is the exact envelope prepared for the network.
type SyncRecord struct {
	StoreID      string          `json:"store_id"`
	SyncedAt     time.Time       `json:"synced_at"`
	ProductCount int             `json:"product_count"`
	Status       string          `json:"status"`
	Payload      CatalogEnvelope `json:"ondc_payload"`
}
