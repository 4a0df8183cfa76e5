// Package registry is the outbound transport to the ONDC gateway.
// Catalog payloads are pushed as signed on_search messages; the
// network's own retry semantics apply on failure, the adapter does not
// retry.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ondc-seller-adapter/internal/beckn"
	"ondc-seller-adapter/internal/model"
)

type Client struct {
	baseURL      string
	subscriberID string
	signer       beckn.Signer
	httpClient   *http.Client
}

// NewClient creates a registry client. An empty baseURL disables the
// client; callers check Enabled before pushing.
func NewClient(baseURL, subscriberID string, signer beckn.Signer) *Client {
	return &Client{
		baseURL:      baseURL,
		subscriberID: subscriberID,
		signer:       signer,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// PushCatalog POSTs the catalog envelope to the gateway's on_search
// endpoint with an HMAC signature over the exact body bytes.
func (c *Client) PushCatalog(ctx context.Context, env model.CatalogEnvelope) error {
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("registry: encode catalog: %w", err)
	}

	url := fmt.Sprintf("%s/on_search", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("registry: build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization",
		fmt.Sprintf("Signature keyId=%q,algorithm=\"hmac-sha256\",signature=%q", c.subscriberID, c.signer.Sign(body)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("registry: push catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("registry: push catalog: status %d: %s", resp.StatusCode, msg)
	}
	return nil
}
