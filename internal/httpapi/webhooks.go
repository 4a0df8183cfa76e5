package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ondc-seller-adapter/internal/beckn"
	"ondc-seller-adapter/internal/model"
	"ondc-seller-adapter/internal/store"
)

// Beckn error taxonomy surfaced in NACK bodies.
const (
	errTypeCore   = "CORE-ERROR"
	errTypeDomain = "DOMAIN-ERROR"

	codeInvalidRequest   = "30000"
	codeProviderNotFound = "30001"
	codeQuoteError       = "30009"
	codeInternalError    = "31001"
)

type StoreDirectory interface {
	GetByID(ctx context.Context, storeID string) (model.Store, error)
	ListONDCEnabled(ctx context.Context) ([]model.Store, error)
}

type ProductCatalog interface {
	ListActive(ctx context.Context, storeID string) ([]model.Product, error)
}

type OrderWriter interface {
	Insert(ctx context.Context, order model.NetworkOrder) error
	UpdateStatus(ctx context.Context, orderID, status string) (model.NetworkOrder, error)
}

type OrderPublisher interface {
	PublishOrderCreated(ctx context.Context, evt model.OrderCreated) error
}

// WebhookService answers the inbound Beckn actions. Every handler is a
// stateless request/response pair: the provider id in the payload is
// the only routing state, so out-of-order actions are answered rather
// than rejected and the expected search→select→init→confirm sequence
// is the buyer app's responsibility.
type WebhookService struct {
	stores        StoreDirectory
	products      ProductCatalog
	orders        OrderWriter
	events        OrderPublisher
	contexts      beckn.ContextBuilder
	settlementUPI string
	log           *zap.Logger
}

func NewWebhookService(
	stores StoreDirectory,
	products ProductCatalog,
	orders OrderWriter,
	events OrderPublisher,
	contexts beckn.ContextBuilder,
	settlementUPI string,
	log *zap.Logger,
) *WebhookService {
	return &WebhookService{
		stores:        stores,
		products:      products,
		orders:        orders,
		events:        events,
		contexts:      contexts,
		settlementUPI: settlementUPI,
		log:           log,
	}
}

// RegisterRoutes wires the Beckn webhook endpoints.
// gorilla/mux: method-based routing on the webhook paths.
func (s *WebhookService) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/ondc/webhooks/search", s.searchHandler).Methods(http.MethodPost)
	r.HandleFunc("/ondc/webhooks/select", s.selectHandler).Methods(http.MethodPost)
	r.HandleFunc("/ondc/webhooks/init", s.initHandler).Methods(http.MethodPost)
	r.HandleFunc("/ondc/webhooks/confirm", s.confirmHandler).Methods(http.MethodPost)
}

// respondContext builds the outbound context for action, threading the
// buyer's transaction id through and echoing the buyer-side routing
// fields from the inbound context.
func (s *WebhookService) respondContext(action string, in model.Context) (model.Context, error) {
	bctx, err := s.contexts.Build(action, in.TransactionID)
	if err != nil {
		return model.Context{}, err
	}
	if in.Domain != "" {
		bctx.Domain = in.Domain
	}
	if in.City != "" {
		bctx.City = in.City
	}
	bctx.BapID = in.BapID
	bctx.BapURI = in.BapURI
	return bctx, nil
}

func (s *WebhookService) searchHandler(w http.ResponseWriter, r *http.Request) {
	var req model.SearchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeNack(w, http.StatusBadRequest, errTypeCore, codeInvalidRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeNack(w, http.StatusBadRequest, errTypeCore, codeInvalidRequest, "schema validation failed: "+err.Error())
		return
	}

	ctx := r.Context()
	name, category := searchIntent(req.Message.Intent)

	stores, err := s.stores.ListONDCEnabled(ctx)
	if err != nil {
		s.internalError(w, "search", err)
		return
	}

	providers := []model.Provider{}
	for _, st := range stores {
		products, err := s.products.ListActive(ctx, st.StoreID)
		if err != nil {
			s.internalError(w, "search", err)
			return
		}
		matched := filterProducts(products, name, category)
		if len(matched) == 0 {
			continue
		}
		providers = append(providers, beckn.ProjectProvider(st, matched))
	}

	bctx, err := s.respondContext("on_search", req.Context)
	if err != nil {
		writeNack(w, http.StatusBadRequest, errTypeCore, codeInvalidRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, model.CatalogEnvelope{
		Context: bctx,
		Message: model.CatalogMessage{
			Catalog: model.Catalog{BPPProviders: providers},
		},
	})
}

func (s *WebhookService) selectHandler(w http.ResponseWriter, r *http.Request) {
	req, st, ok := s.resolveOrderRequest(w, r, "select")
	if !ok {
		return
	}
	order := req.Message.Order

	quote, err := beckn.CalculateQuote(order.Items)
	if err != nil {
		if errors.Is(err, beckn.ErrInvalidPrice) {
			writeNack(w, http.StatusBadRequest, errTypeDomain, codeQuoteError, err.Error())
			return
		}
		s.internalError(w, "select", err)
		return
	}

	bctx, err := s.respondContext("on_select", req.Context)
	if err != nil {
		writeNack(w, http.StatusBadRequest, errTypeCore, codeInvalidRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, model.OnSelectResponse{
		Context: bctx,
		Message: model.OnSelectMessage{
			Order: model.OnSelectOrder{
				Provider: model.ProviderRef{
					ID:        st.StoreID,
					Locations: []model.LocationRef{{ID: st.StoreID + "_loc1"}},
				},
				Items:       order.Items,
				Quote:       quote,
				Fulfillment: beckn.DeliveryFulfillment(),
			},
		},
	})
}

func (s *WebhookService) initHandler(w http.ResponseWriter, r *http.Request) {
	req, _, ok := s.resolveOrderRequest(w, r, "init")
	if !ok {
		return
	}
	order := req.Message.Order

	billing := model.Billing{}
	if order.Billing != nil {
		billing = *order.Billing
	}

	bctx, err := s.respondContext("on_init", req.Context)
	if err != nil {
		writeNack(w, http.StatusBadRequest, errTypeCore, codeInvalidRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, model.OnInitResponse{
		Context: bctx,
		Message: model.OnInitMessage{
			Order: model.OnInitOrder{
				Provider: order.Provider,
				Items:    order.Items,
				Billing:  billing,
				Quote:    order.Quote,
				Payment:  beckn.SellerPayment(s.settlementUPI),
			},
		},
	})
}

func (s *WebhookService) confirmHandler(w http.ResponseWriter, r *http.Request) {
	req, st, ok := s.resolveOrderRequest(w, r, "confirm")
	if !ok {
		return
	}
	order := req.Message.Order
	ctx := r.Context()

	total, err := orderTotal(order.Quote)
	if err != nil {
		writeNack(w, http.StatusBadRequest, errTypeDomain, codeQuoteError, err.Error())
		return
	}

	customerName := "ONDC Customer"
	customerPhone, customerEmail := "", ""
	if order.Billing != nil {
		if order.Billing.Name != "" {
			customerName = order.Billing.Name
		}
		customerPhone = order.Billing.Phone
		customerEmail = order.Billing.Email
	}

	now := time.Now().UTC()
	norder := model.NetworkOrder{
		OrderID:       newOrderID(),
		StoreID:       st.StoreID,
		Source:        "ondc",
		ONDCOrderID:   order.ID,
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
		CustomerEmail: customerEmail,
		Items:         order.Items,
		TotalAmount:   total,
		Status:        model.OrderStatusPending,
		PaymentStatus: "pending",
		CreatedAt:     now,
	}

	if err := s.orders.Insert(ctx, norder); err != nil {
		s.internalError(w, "confirm", err)
		return
	}

	// Fire-and-forget; the order is already durable.
	if err := s.events.PublishOrderCreated(ctx, model.OrderCreated{
		OrderID:       norder.OrderID,
		StoreID:       norder.StoreID,
		ONDCOrderID:   norder.ONDCOrderID,
		TransactionID: req.Context.TransactionID,
		TotalAmount:   norder.TotalAmount,
		ItemCount:     len(norder.Items),
		Timestamp:     now.Format(time.RFC3339),
	}); err != nil {
		s.log.Warn("order created event publish failed",
			zap.String("order_id", norder.OrderID), zap.Error(err))
	}

	bctx, err := s.respondContext("on_confirm", req.Context)
	if err != nil {
		writeNack(w, http.StatusBadRequest, errTypeCore, codeInvalidRequest, err.Error())
		return
	}

	ts := now.Format(time.RFC3339)
	writeJSON(w, http.StatusOK, model.OnConfirmResponse{
		Context: bctx,
		Message: model.OnConfirmMessage{
			Order: model.OnConfirmOrder{
				ID:          norder.OrderID,
				State:       beckn.OrderStateAccepted,
				Provider:    order.Provider,
				Items:       order.Items,
				Billing:     order.Billing,
				Fulfillment: beckn.PendingFulfillment(uuid.NewString()),
				Quote:       order.Quote,
				Payment:     order.Payment,
				CreatedAt:   ts,
				UpdatedAt:   ts,
			},
		},
	})
}

// resolveOrderRequest decodes, validates, and resolves the provider id
// for select/init/confirm. On failure it writes the NACK and returns
// ok=false without any side effect.
func (s *WebhookService) resolveOrderRequest(w http.ResponseWriter, r *http.Request, action string) (model.OrderRequest, model.Store, bool) {
	var req model.OrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeNack(w, http.StatusBadRequest, errTypeCore, codeInvalidRequest, "invalid JSON body")
		return req, model.Store{}, false
	}
	if err := validate.Struct(req); err != nil {
		writeNack(w, http.StatusBadRequest, errTypeCore, codeInvalidRequest, "schema validation failed: "+err.Error())
		return req, model.Store{}, false
	}

	st, err := s.stores.GetByID(r.Context(), req.Message.Order.Provider.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeNack(w, http.StatusNotFound, errTypeDomain, codeProviderNotFound, "provider not found")
			return req, model.Store{}, false
		}
		s.internalError(w, action, err)
		return req, model.Store{}, false
	}
	return req, st, true
}

func (s *WebhookService) internalError(w http.ResponseWriter, action string, err error) {
	s.log.Error("webhook failed", zap.String("action", action), zap.Error(err))
	writeNack(w, http.StatusInternalServerError, errTypeCore, codeInternalError, "internal error")
}

func searchIntent(intent model.Intent) (name, category string) {
	if intent.Item != nil {
		name = intent.Item.Descriptor.Name
	}
	if intent.Category != nil {
		category = intent.Category.ID
	}
	return name, category
}

// filterProducts applies the search intent: case-insensitive substring
// on the product name, exact match on category. Empty criteria match
// everything.
func filterProducts(products []model.Product, name, category string) []model.Product {
	name = strings.ToLower(name)
	matched := make([]model.Product, 0, len(products))
	for _, p := range products {
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

func orderTotal(quote *model.Quote) (float64, error) {
	if quote == nil || quote.Price.Value == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(quote.Price.Value)
	if err != nil {
		return 0, fmt.Errorf("%w: quote value %q", beckn.ErrInvalidPrice, quote.Price.Value)
	}
	total, _ := d.Float64()
	return total, nil
}

func newOrderID() string {
	return "ondc_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
