package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"ondc-seller-adapter/internal/model"
)

// go-playground/validator/v10: struct validator for inbound payloads.
var validate = validator.New()

// RegisterRoutes wires the webhook and retailer surfaces onto one
// router.
func RegisterRoutes(r *mux.Router, webhooks *WebhookService, retail *RetailService) {
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	webhooks.RegisterRoutes(r)
	retail.RegisterRoutes(r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeJSON(r *http.Request, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeNack reports a webhook failure as a Beckn NACK body whose error
// block mirrors the HTTP status.
func writeNack(w http.ResponseWriter, status int, errType, code, message string) {
	writeJSON(w, status, model.NewNack(errType, code, message))
}
