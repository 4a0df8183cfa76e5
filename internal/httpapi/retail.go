package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"ondc-seller-adapter/internal/beckn"
	"ondc-seller-adapter/internal/model"
	"ondc-seller-adapter/internal/store"
	"ondc-seller-adapter/internal/syncer"
)

type KYCStore interface {
	Get(ctx context.Context, storeID string) (model.KYCRecord, error)
	Upsert(ctx context.Context, rec model.KYCRecord) error
}

type SyncReader interface {
	Latest(ctx context.Context, storeID string) (model.SyncRecord, error)
}

type CatalogSyncer interface {
	Sync(ctx context.Context, storeID string) (syncer.SyncResult, error)
}

// RetailService serves the retailer-facing ONDC endpoints. Session
// authentication lives in the storefront layer; it forwards the
// resolved store id in the X-Store-ID header.
type RetailService struct {
	stores   StoreDirectory
	kyc      KYCStore
	syncs    SyncReader
	orders   OrderWriter
	syncer   CatalogSyncer
	contexts beckn.ContextBuilder
	log      *zap.Logger
}

func NewRetailService(
	stores StoreDirectory,
	kyc KYCStore,
	syncs SyncReader,
	orders OrderWriter,
	catalogSyncer CatalogSyncer,
	contexts beckn.ContextBuilder,
	log *zap.Logger,
) *RetailService {
	return &RetailService{
		stores:   stores,
		kyc:      kyc,
		syncs:    syncs,
		orders:   orders,
		syncer:   catalogSyncer,
		contexts: contexts,
		log:      log,
	}
}

func (s *RetailService) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/ondc/kyc", s.kycHandler).Methods(http.MethodPost)
	r.HandleFunc("/ondc/kyc-status", s.kycStatusHandler).Methods(http.MethodGet)
	r.HandleFunc("/ondc/sync-catalog", s.syncCatalogHandler).Methods(http.MethodPost)
	r.HandleFunc("/ondc/sync-status", s.syncStatusHandler).Methods(http.MethodGet)
	r.HandleFunc("/ondc/orders/{order_id}/status", s.orderStatusHandler).Methods(http.MethodPost)
}

type kycRequest struct {
	GSTIN             string `json:"gstin" validate:"required"`
	PAN               string `json:"pan" validate:"required"`
	BankAccount       string `json:"bank_account" validate:"required"`
	BankIFSC          string `json:"bank_ifsc" validate:"required"`
	BankName          string `json:"bank_name" validate:"required"`
	AccountHolderName string `json:"account_holder_name" validate:"required"`
}

func (s *RetailService) kycHandler(w http.ResponseWriter, r *http.Request) {
	st, ok := s.resolveStore(w, r)
	if !ok {
		return
	}

	var req kycRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	rec := model.KYCRecord{
		StoreID:           st.StoreID,
		GSTIN:             req.GSTIN,
		PAN:               req.PAN,
		BankAccount:       req.BankAccount,
		BankIFSC:          req.BankIFSC,
		BankName:          req.BankName,
		AccountHolderName: req.AccountHolderName,
		Status:            model.KYCStatusPending,
		SubmittedAt:       time.Now().UTC(),
	}
	if err := s.kyc.Upsert(r.Context(), rec); err != nil {
		s.log.Error("kyc upsert failed", zap.String("store_id", st.StoreID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to submit KYC")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "KYC submitted successfully",
		"status":  model.KYCStatusPending,
	})
}

func (s *RetailService) kycStatusHandler(w http.ResponseWriter, r *http.Request) {
	st, ok := s.resolveStore(w, r)
	if !ok {
		return
	}

	resp := map[string]any{
		"has_kyc":      false,
		"kyc_data":     nil,
		"ondc_enabled": st.ONDCEnabled,
	}
	rec, err := s.kyc.Get(r.Context(), st.StoreID)
	if err == nil {
		resp["has_kyc"] = true
		resp["kyc_data"] = rec
	} else if !errors.Is(err, store.ErrNotFound) {
		s.log.Error("kyc read failed", zap.String("store_id", st.StoreID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to read KYC status")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *RetailService) syncCatalogHandler(w http.ResponseWriter, r *http.Request) {
	storeID := r.Header.Get("X-Store-ID")
	if storeID == "" {
		writeError(w, http.StatusBadRequest, "missing X-Store-ID header")
		return
	}

	result, err := s.syncer.Sync(r.Context(), storeID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "Store not found")
		case errors.Is(err, syncer.ErrNotEnabled):
			writeError(w, http.StatusBadRequest, "ONDC not enabled for this store")
		case errors.Is(err, syncer.ErrKYCRequired):
			writeError(w, http.StatusBadRequest, "KYC not verified. Please complete KYC first.")
		default:
			s.log.Error("catalog sync failed", zap.String("store_id", storeID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Sync failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "Catalog synced successfully",
		"product_count": result.ProductCount,
		"synced_at":     result.SyncedAt.Format(time.RFC3339),
	})
}

// syncSummary is the last-sync projection returned to the retailer.
// The full transmitted payload stays in the audit record.
type syncSummary struct {
	StoreID      string    `json:"store_id"`
	SyncedAt     time.Time `json:"synced_at"`
	ProductCount int       `json:"product_count"`
	Status       string    `json:"status"`
}

func (s *RetailService) syncStatusHandler(w http.ResponseWriter, r *http.Request) {
	st, ok := s.resolveStore(w, r)
	if !ok {
		return
	}

	resp := map[string]any{
		"has_synced":   false,
		"last_sync":    nil,
		"ondc_enabled": st.ONDCEnabled,
	}
	rec, err := s.syncs.Latest(r.Context(), st.StoreID)
	if err == nil {
		resp["has_synced"] = true
		resp["last_sync"] = syncSummary{
			StoreID:      rec.StoreID,
			SyncedAt:     rec.SyncedAt,
			ProductCount: rec.ProductCount,
			Status:       rec.Status,
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		s.log.Error("sync status read failed", zap.String("store_id", st.StoreID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to read sync status")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing completed cancelled"`
}

// orderStatusHandler updates a network order's status and returns the
// on_status envelope the storefront layer relays to the network.
func (s *RetailService) orderStatusHandler(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["order_id"]

	var req orderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	order, err := s.orders.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Order not found")
			return
		}
		s.log.Error("order status update failed", zap.String("order_id", orderID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to update order status")
		return
	}

	bctx, err := s.contexts.Build("on_status", "")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	state := beckn.OrderState(order.Status)
	writeJSON(w, http.StatusOK, model.OnStatusResponse{
		Context: bctx,
		Message: model.OnStatusMessage{
			Order: model.OnStatusOrder{
				ID:          order.OrderID,
				State:       state,
				Fulfillment: beckn.StateFulfillment(state),
				UpdatedAt:   time.Now().UTC().Format(time.RFC3339),
			},
		},
	})
}

func (s *RetailService) resolveStore(w http.ResponseWriter, r *http.Request) (model.Store, bool) {
	storeID := r.Header.Get("X-Store-ID")
	if storeID == "" {
		writeError(w, http.StatusBadRequest, "missing X-Store-ID header")
		return model.Store{}, false
	}

	st, err := s.stores.GetByID(r.Context(), storeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Store not found")
			return model.Store{}, false
		}
		s.log.Error("store lookup failed", zap.String("store_id", storeID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load store")
		return model.Store{}, false
	}
	return st, true
}
