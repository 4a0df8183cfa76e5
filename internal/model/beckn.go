package model

// Beckn wire types for the seller (BPP) side of the ONDC retail flow.
// Shapes follow the v1.0 retail schema: catalog payloads published via
// on_search, order envelopes exchanged over select/init/confirm, and
// the ACK/NACK acknowledgement wrapper.

// Context is the Beckn context envelope shared by every message on the
// network. It is built fresh per outbound message and never mutated.
type Context struct {
	Domain        string `json:"domain" validate:"required"`
	Country       string `json:"country"`
	City          string `json:"city"`
	Action        string `json:"action" validate:"required"`
	CoreVersion   string `json:"core_version"`
	BapID         string `json:"bap_id"`
	BapURI        string `json:"bap_uri"`
	BppID         string `json:"bpp_id"`
	BppURI        string `json:"bpp_uri"`
	TransactionID string `json:"transaction_id"`
	MessageID     string `json:"message_id"`
	Timestamp     string `json:"timestamp"`
	TTL           string `json:"ttl,omitempty"`
}

type Image struct {
	URL string `json:"url"`
}

type Descriptor struct {
	Name      string  `json:"name"`
	ShortDesc string  `json:"short_desc,omitempty"`
	LongDesc  string  `json:"long_desc,omitempty"`
	Images    []Image `json:"images,omitempty"`
}

// CatalogEnvelope is the full on_search payload: context plus the
// bpp/descriptor and bpp/providers catalog.
type CatalogEnvelope struct {
	Context Context        `json:"context"`
	Message CatalogMessage `json:"message"`
}

type CatalogMessage struct {
	Catalog Catalog `json:"catalog"`
}

type Catalog struct {
	BPPDescriptor *Descriptor `json:"bpp/descriptor,omitempty"`
	BPPProviders  []Provider  `json:"bpp/providers"`
}

// Provider is the catalog projection of one store. Derived on demand,
// never persisted as-is. Every item's location_id and category_id must
// reference an entry carried in the same Provider.
type Provider struct {
	ID         string     `json:"id" validate:"required"`
	Descriptor Descriptor `json:"descriptor"`
	Locations  []Location `json:"locations,omitempty"`
	Categories []Category `json:"categories,omitempty"`
	Items      []Item     `json:"items"`
}

type Location struct {
	ID      string  `json:"id"`
	GPS     string  `json:"gps,omitempty"`
	Address Address `json:"address"`
}

type Address struct {
	Street   string `json:"street,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country,omitempty"`
	AreaCode string `json:"area_code,omitempty"`
}

type Category struct {
	ID         string     `json:"id"`
	Descriptor Descriptor `json:"descriptor"`
}

// Item is the catalog projection of one product.
type Item struct {
	ID                 string        `json:"id" validate:"required"`
	Descriptor         Descriptor    `json:"descriptor"`
	Price              Price         `json:"price"`
	Quantity           *ItemQuantity `json:"quantity,omitempty"`
	CategoryID         string        `json:"category_id"`
	LocationID         string        `json:"location_id"`
	Returnable         bool          `json:"@ondc/org/returnable"`
	Cancellable        bool          `json:"@ondc/org/cancellable"`
	ReturnWindow       string        `json:"@ondc/org/return_window,omitempty"`
	SellerPickupReturn bool          `json:"@ondc/org/seller_pickup_return"`
	TimeToShip         string        `json:"@ondc/org/time_to_ship,omitempty"`
	AvailableOnCOD     bool          `json:"@ondc/org/available_on_cod"`
	Tags               []Tag         `json:"tags,omitempty"`
}

type Price struct {
	Currency     string `json:"currency"`
	Value        string `json:"value"`
	MaximumValue string `json:"maximum_value,omitempty"`
}

type ItemQuantity struct {
	Available *QuantityCount `json:"available,omitempty"`
	Maximum   *QuantityCount `json:"maximum,omitempty"`
}

type QuantityCount struct {
	Count string `json:"count"`
}

type Tag struct {
	Code string     `json:"code"`
	List []TagEntry `json:"list,omitempty"`
}

type TagEntry struct {
	Code  string `json:"code"`
	Value string `json:"value"`
}

// SearchRequest models an inbound buyer /search call. Intent fields are
// optional; an empty intent matches every catalog.
type SearchRequest struct {
	Context Context       `json:"context" validate:"required"`
	Message SearchMessage `json:"message"`
}

type SearchMessage struct {
	Intent Intent `json:"intent"`
}

type Intent struct {
	Item     *IntentItem  `json:"item,omitempty"`
	Category *CategoryRef `json:"category,omitempty"`
}

type IntentItem struct {
	Descriptor Descriptor `json:"descriptor"`
}

type CategoryRef struct {
	ID string `json:"id"`
}

// OrderRequest models inbound select/init/confirm calls. The provider
// id is the only routing field the adapter requires.
type OrderRequest struct {
	Context Context      `json:"context" validate:"required"`
	Message OrderMessage `json:"message" validate:"required"`
}

type OrderMessage struct {
	Order Order `json:"order" validate:"required"`
}

type Order struct {
	ID       string         `json:"id,omitempty"`
	State    string         `json:"state,omitempty"`
	Provider ProviderRef    `json:"provider" validate:"required"`
	Items    []SelectedItem `json:"items,omitempty"`
	Billing  *Billing       `json:"billing,omitempty"`
	Quote    *Quote         `json:"quote,omitempty"`
	Payment  *Payment       `json:"payment,omitempty"`
}

type ProviderRef struct {
	ID        string        `json:"id" validate:"required"`
	Locations []LocationRef `json:"locations,omitempty"`
}

type LocationRef struct {
	ID string `json:"id"`
}

// SelectedItem is a line item as carried in order envelopes: id plus
// the unit price and requested count.
type SelectedItem struct {
	ID       string            `json:"id"`
	Price    Price             `json:"price,omitempty"`
	Quantity *SelectedQuantity `json:"quantity,omitempty"`
}

type SelectedQuantity struct {
	Count int `json:"count"`
}

type Billing struct {
	Name    string   `json:"name,omitempty"`
	Phone   string   `json:"phone,omitempty"`
	Email   string   `json:"email,omitempty"`
	Address *Address `json:"address,omitempty"`
}

// Quote is a total price plus its ordered breakup. The breakup entries
// always sum to the total.
type Quote struct {
	Price   Price          `json:"price"`
	Breakup []BreakupEntry `json:"breakup"`
}

type BreakupEntry struct {
	Title string `json:"title"`
	Price Price  `json:"price"`
}

type Payment struct {
	Type              string             `json:"type"`
	CollectedBy       string             `json:"collected_by"`
	FinderFeeType     string             `json:"@ondc/org/buyer_app_finder_fee_type,omitempty"`
	FinderFeeAmount   string             `json:"@ondc/org/buyer_app_finder_fee_amount,omitempty"`
	SettlementDetails []SettlementDetail `json:"@ondc/org/settlement_details,omitempty"`
}

type SettlementDetail struct {
	SettlementCounterparty  string `json:"settlement_counterparty"`
	SettlementType          string `json:"settlement_type"`
	UPIAddress              string `json:"upi_address,omitempty"`
	SettlementBankAccountNo string `json:"settlement_bank_account_no,omitempty"`
	SettlementIFSCCode      string `json:"settlement_ifsc_code,omitempty"`
}

type Fulfillment struct {
	ID       string            `json:"id,omitempty"`
	Type     string            `json:"type"`
	State    *FulfillmentState `json:"state,omitempty"`
	Tracking bool              `json:"tracking"`
	TAT      string            `json:"@ondc/org/TAT,omitempty"`
	Category string            `json:"@ondc/org/category,omitempty"`
}

type FulfillmentState struct {
	Descriptor StateDescriptor `json:"descriptor"`
}

type StateDescriptor struct {
	Code string `json:"code"`
}

// OnSelectResponse is the on_select order envelope carrying the quote.
type OnSelectResponse struct {
	Context Context         `json:"context"`
	Message OnSelectMessage `json:"message"`
}

type OnSelectMessage struct {
	Order OnSelectOrder `json:"order"`
}

type OnSelectOrder struct {
	Provider    ProviderRef    `json:"provider"`
	Items       []SelectedItem `json:"items"`
	Quote       Quote          `json:"quote"`
	Fulfillment Fulfillment    `json:"fulfillment"`
}

// OnInitResponse echoes the draft order with billing and the seller's
// payment/settlement terms attached.
type OnInitResponse struct {
	Context Context       `json:"context"`
	Message OnInitMessage `json:"message"`
}

type OnInitMessage struct {
	Order OnInitOrder `json:"order"`
}

type OnInitOrder struct {
	Provider ProviderRef    `json:"provider"`
	Items    []SelectedItem `json:"items"`
	Billing  Billing        `json:"billing"`
	Quote    *Quote         `json:"quote,omitempty"`
	Payment  Payment        `json:"payment"`
}

// OnConfirmResponse is the accepted-order envelope returned after the
// adapter has persisted the network order.
type OnConfirmResponse struct {
	Context Context          `json:"context"`
	Message OnConfirmMessage `json:"message"`
}

type OnConfirmMessage struct {
	Order OnConfirmOrder `json:"order"`
}

type OnConfirmOrder struct {
	ID          string         `json:"id"`
	State       string         `json:"state"`
	Provider    ProviderRef    `json:"provider"`
	Items       []SelectedItem `json:"items"`
	Billing     *Billing       `json:"billing,omitempty"`
	Fulfillment Fulfillment    `json:"fulfillment"`
	Quote       *Quote         `json:"quote,omitempty"`
	Payment     *Payment       `json:"payment,omitempty"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}

// OnStatusResponse reports an order state change to the network.
type OnStatusResponse struct {
	Context Context         `json:"context"`
	Message OnStatusMessage `json:"message"`
}

type OnStatusMessage struct {
	Order OnStatusOrder `json:"order"`
}

type OnStatusOrder struct {
	ID          string      `json:"id"`
	State       string      `json:"state"`
	Fulfillment Fulfillment `json:"fulfillment"`
	UpdatedAt   string      `json:"updated_at"`
}

// Ack/NACK acknowledgement wrapper. Every webhook failure is reported
// as a NACK body with an error block rather than a bare HTTP error.
type AckResponse struct {
	Message AckMessage  `json:"message"`
	Error   *BecknError `json:"error,omitempty"`
}

type AckMessage struct {
	Ack Ack `json:"ack"`
}

type Ack struct {
	Status string `json:"status"`
}

type BecknError struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewNack builds a NACK acknowledgement with the given error block.
func NewNack(errType, code, message string) AckResponse {
	return AckResponse{
		Message: AckMessage{Ack: Ack{Status: "NACK"}},
		Error:   &BecknError{Type: errType, Code: code, Message: message},
	}
}
