package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"ondc-seller-adapter/internal/beckn"
	"ondc-seller-adapter/internal/model"
	"ondc-seller-adapter/internal/store"
)

type fakeStores struct {
	docs map[string]model.Store
}

func (f *fakeStores) GetByID(_ context.Context, storeID string) (model.Store, error) {
	doc, ok := f.docs[storeID]
	if !ok {
		return model.Store{}, store.ErrNotFound
	}
	return doc, nil
}

func (f *fakeStores) ListONDCEnabled(_ context.Context) ([]model.Store, error) {
	out := []model.Store{}
	for _, doc := range f.docs {
		if doc.ONDCEnabled {
			out = append(out, doc)
		}
	}
	return out, nil
}

type fakeProducts struct {
	byStore map[string][]model.Product
}

func (f *fakeProducts) ListActive(_ context.Context, storeID string) ([]model.Product, error) {
	out := []model.Product{}
	for _, p := range f.byStore[storeID] {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeOrders struct {
	inserted []model.NetworkOrder
	docs     map[string]model.NetworkOrder
}

func (f *fakeOrders) Insert(_ context.Context, order model.NetworkOrder) error {
	f.inserted = append(f.inserted, order)
	return nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, orderID, status string) (model.NetworkOrder, error) {
	doc, ok := f.docs[orderID]
	if !ok {
		return model.NetworkOrder{}, store.ErrNotFound
	}
	doc.Status = status
	f.docs[orderID] = doc
	return doc, nil
}

type fakePublisher struct {
	orderEvents []model.OrderCreated
}

func (f *fakePublisher) PublishOrderCreated(_ context.Context, evt model.OrderCreated) error {
	f.orderEvents = append(f.orderEvents, evt)
	return nil
}

func fixtureStore() model.Store {
	return model.Store{
		StoreID:     "store_s1",
		StoreName:   "Sharma General Store",
		Category:    "grocery",
		ONDCEnabled: true,
		Address: model.StoreAddress{
			GPS: "28.6129,77.2295", Street: "14 MG Road",
			City: "New Delhi", State: "Delhi", AreaCode: "110001",
		},
	}
}

func newWebhookFixture() (*mux.Router, *fakeOrders, *fakePublisher) {
	stores := &fakeStores{docs: map[string]model.Store{"store_s1": fixtureStore()}}
	products := &fakeProducts{byStore: map[string][]model.Product{
		"store_s1": {
			{ProductID: "prod_salt", StoreID: "store_s1", Name: "Tata Salt 1kg", Price: 100, Stock: 25, Category: "grocery", IsActive: true},
			{ProductID: "prod_rice", StoreID: "store_s1", Name: "Rice 5kg", Price: 50, Stock: 10, Category: "grocery", IsActive: true},
		},
	}}
	orders := &fakeOrders{docs: map[string]model.NetworkOrder{}}
	events := &fakePublisher{}

	contexts := beckn.ContextBuilder{
		SubscriberID:  "seller-adapter.test.in",
		SubscriberURL: "https://seller-adapter.test.in/ondc/webhooks",
		Domain:        "nic2004:52110",
		CoreVersion:   "1.0.0",
	}
	svc := NewWebhookService(stores, products, orders, events, contexts, "seller@upi", zap.NewNop())

	r := mux.NewRouter()
	svc.RegisterRoutes(r)
	return r, orders, events
}

func postJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func buyerContext(action, txnID string) model.Context {
	return model.Context{
		Domain:        "nic2004:52110",
		Country:       "IND",
		City:          "std:011",
		Action:        action,
		CoreVersion:   "1.0.0",
		BapID:         "buyer-app.test.org",
		BapURI:        "https://buyer-app.test.org/protocol/v1",
		TransactionID: txnID,
		MessageID:     "msg-1",
	}
}

func TestSearchWebhook_FiltersByItemName(t *testing.T) {
	r, _, _ := newWebhookFixture()

	rec := postJSON(t, r, "/ondc/webhooks/search", model.SearchRequest{
		Context: buyerContext("search", "txn-1"),
		Message: model.SearchMessage{
			Intent: model.Intent{Item: &model.IntentItem{Descriptor: model.Descriptor{Name: "salt"}}},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp model.CatalogEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Context.Action != "on_search" {
		t.Errorf("action = %q, want on_search", resp.Context.Action)
	}
	if resp.Context.TransactionID != "txn-1" {
		t.Errorf("transaction id = %q, want txn-1", resp.Context.TransactionID)
	}
	if resp.Context.BapID != "buyer-app.test.org" {
		t.Errorf("bap_id = %q, want echo of buyer", resp.Context.BapID)
	}

	providers := resp.Message.Catalog.BPPProviders
	if len(providers) != 1 {
		t.Fatalf("expected 1 provider, got %d", len(providers))
	}
	if len(providers[0].Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(providers[0].Items))
	}
	if providers[0].Items[0].ID != "prod_salt" {
		t.Errorf("item id = %q, want prod_salt", providers[0].Items[0].ID)
	}
}

func TestSearchWebhook_NoIntentReturnsFullCatalog(t *testing.T) {
	r, _, _ := newWebhookFixture()

	rec := postJSON(t, r, "/ondc/webhooks/search", model.SearchRequest{
		Context: buyerContext("search", "txn-1"),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp model.CatalogEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Message.Catalog.BPPProviders) != 1 {
		t.Fatalf("expected 1 provider, got %d", len(resp.Message.Catalog.BPPProviders))
	}
	if got := len(resp.Message.Catalog.BPPProviders[0].Items); got != 2 {
		t.Errorf("expected 2 items, got %d", got)
	}
}

func TestSearchWebhook_MalformedJSON(t *testing.T) {
	r, _, _ := newWebhookFixture()

	req := httptest.NewRequest(http.MethodPost, "/ondc/webhooks/search", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp model.AckResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode NACK: %v", err)
	}
	if resp.Message.Ack.Status != "NACK" {
		t.Errorf("ack status = %q, want NACK", resp.Message.Ack.Status)
	}
	if resp.Error == nil || resp.Error.Code == "" {
		t.Error("expected error block with a code")
	}
}

func selectRequest(txnID string) model.OrderRequest {
	return model.OrderRequest{
		Context: buyerContext("select", txnID),
		Message: model.OrderMessage{
			Order: model.Order{
				Provider: model.ProviderRef{ID: "store_s1"},
				Items: []model.SelectedItem{
					{ID: "prod_salt", Price: model.Price{Currency: "INR", Value: "100.00"}, Quantity: &model.SelectedQuantity{Count: 2}},
					{ID: "prod_rice", Price: model.Price{Currency: "INR", Value: "50.00"}, Quantity: &model.SelectedQuantity{Count: 1}},
				},
			},
		},
	}
}

func TestSelectWebhook_Quote(t *testing.T) {
	r, _, _ := newWebhookFixture()

	rec := postJSON(t, r, "/ondc/webhooks/select", selectRequest("txn-2"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp model.OnSelectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Context.Action != "on_select" {
		t.Errorf("action = %q", resp.Context.Action)
	}
	if resp.Context.TransactionID != "txn-2" {
		t.Errorf("transaction id = %q, want txn-2", resp.Context.TransactionID)
	}

	quote := resp.Message.Order.Quote
	if quote.Price.Value != "250.00" {
		t.Errorf("quote total = %q, want 250.00", quote.Price.Value)
	}
	if len(quote.Breakup) != 2 || quote.Breakup[1].Price.Value != "0" {
		t.Errorf("breakup = %+v", quote.Breakup)
	}
	if got := resp.Message.Order.Provider.Locations[0].ID; got != "store_s1_loc1" {
		t.Errorf("location ref = %q, want store_s1_loc1", got)
	}
}

func TestSelectWebhook_UnknownProvider(t *testing.T) {
	r, _, _ := newWebhookFixture()

	req := selectRequest("txn-2")
	req.Message.Order.Provider.ID = "store_missing"

	rec := postJSON(t, r, "/ondc/webhooks/select", req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestSelectWebhook_InvalidPrice(t *testing.T) {
	r, _, _ := newWebhookFixture()

	req := selectRequest("txn-2")
	req.Message.Order.Items[0].Price.Value = "not-a-number"

	rec := postJSON(t, r, "/ondc/webhooks/select", req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func confirmRequest(txnID string) model.OrderRequest {
	req := selectRequest(txnID)
	req.Context.Action = "confirm"
	req.Message.Order.ID = "bap-order-77"
	req.Message.Order.Billing = &model.Billing{Name: "Asha Rao", Phone: "9800000000", Email: "asha@example.in"}
	req.Message.Order.Quote = &model.Quote{Price: model.Price{Currency: "INR", Value: "250.00"}}
	return req
}

func TestConfirmWebhook_PersistsOrder(t *testing.T) {
	r, orders, events := newWebhookFixture()

	rec := postJSON(t, r, "/ondc/webhooks/confirm", confirmRequest("txn-3"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	if len(orders.inserted) != 1 {
		t.Fatalf("expected 1 inserted order, got %d", len(orders.inserted))
	}
	inserted := orders.inserted[0]
	if !strings.HasPrefix(inserted.OrderID, "ondc_") {
		t.Errorf("order id = %q, want ondc_ prefix", inserted.OrderID)
	}
	if inserted.Source != "ondc" || inserted.StoreID != "store_s1" {
		t.Errorf("inserted order = %+v", inserted)
	}
	if inserted.Status != model.OrderStatusPending {
		t.Errorf("status = %q, want pending", inserted.Status)
	}
	if inserted.ONDCOrderID != "bap-order-77" {
		t.Errorf("ondc order id = %q", inserted.ONDCOrderID)
	}
	if inserted.CustomerName != "Asha Rao" {
		t.Errorf("customer name = %q", inserted.CustomerName)
	}
	if inserted.TotalAmount != 250 {
		t.Errorf("total = %v, want 250", inserted.TotalAmount)
	}

	var resp model.OnConfirmResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message.Order.State != "Accepted" {
		t.Errorf("state = %q, want Accepted", resp.Message.Order.State)
	}
	if resp.Message.Order.ID != inserted.OrderID {
		t.Errorf("response order id %q != inserted %q", resp.Message.Order.ID, inserted.OrderID)
	}
	if resp.Message.Order.Fulfillment.ID == "" {
		t.Error("expected a fresh fulfillment id")
	}

	if len(events.orderEvents) != 1 {
		t.Fatalf("expected 1 order event, got %d", len(events.orderEvents))
	}
	if events.orderEvents[0].OrderID != inserted.OrderID {
		t.Errorf("event order id = %q", events.orderEvents[0].OrderID)
	}
}

func TestConfirmWebhook_UnknownProviderNoSideEffect(t *testing.T) {
	r, orders, events := newWebhookFixture()

	req := confirmRequest("txn-3")
	req.Message.Order.Provider.ID = "store_missing"

	rec := postJSON(t, r, "/ondc/webhooks/confirm", req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var resp model.AckResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode NACK: %v", err)
	}
	if resp.Message.Ack.Status != "NACK" {
		t.Errorf("ack status = %q, want NACK", resp.Message.Ack.Status)
	}

	if len(orders.inserted) != 0 {
		t.Errorf("expected no order insert, got %d", len(orders.inserted))
	}
	if len(events.orderEvents) != 0 {
		t.Errorf("expected no order event, got %d", len(events.orderEvents))
	}
}

func TestInitWebhook_AttachesPayment(t *testing.T) {
	r, _, _ := newWebhookFixture()

	req := selectRequest("txn-2")
	req.Context.Action = "init"
	req.Message.Order.Billing = &model.Billing{Name: "Asha Rao", Phone: "9800000000"}

	rec := postJSON(t, r, "/ondc/webhooks/init", req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp model.OnInitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Context.Action != "on_init" {
		t.Errorf("action = %q", resp.Context.Action)
	}
	if resp.Message.Order.Billing.Name != "Asha Rao" {
		t.Errorf("billing = %+v", resp.Message.Order.Billing)
	}
	payment := resp.Message.Order.Payment
	if payment.Type != "ON-ORDER" || payment.CollectedBy != "BAP" {
		t.Errorf("payment = %+v", payment)
	}
	if len(payment.SettlementDetails) != 1 || payment.SettlementDetails[0].UPIAddress != "seller@upi" {
		t.Errorf("settlement = %+v", payment.SettlementDetails)
	}
}
