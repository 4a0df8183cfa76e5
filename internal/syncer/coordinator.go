// Package syncer drives retailer-requested catalog syncs onto the
// network: precondition checks, projection, optional gateway push, and
// the audit record.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ondc-seller-adapter/internal/beckn"
	"ondc-seller-adapter/internal/model"
	"ondc-seller-adapter/internal/store"
)

var (
	// ErrNotEnabled means the store has not opted into ONDC.
	ErrNotEnabled = errors.New("syncer: ONDC not enabled for this store")
	// ErrKYCRequired means the store has no verified KYC record.
	ErrKYCRequired = errors.New("syncer: KYC not verified")
)

type StoreReader interface {
	GetByID(ctx context.Context, storeID string) (model.Store, error)
}

type ProductLister interface {
	ListActive(ctx context.Context, storeID string) ([]model.Product, error)
}

type KYCReader interface {
	Get(ctx context.Context, storeID string) (model.KYCRecord, error)
}

type SyncAppender interface {
	Append(ctx context.Context, rec model.SyncRecord) error
}

type EventPublisher interface {
	PublishCatalogSynced(ctx context.Context, evt model.CatalogSynced) error
}

type CatalogPusher interface {
	Enabled() bool
	PushCatalog(ctx context.Context, env model.CatalogEnvelope) error
}

// SyncResult is returned to the retailer after a successful sync.
type SyncResult struct {
	ProductCount int       `json:"product_count"`
	SyncedAt     time.Time `json:"synced_at"`
}

type Coordinator struct {
	stores   StoreReader
	products ProductLister
	kyc      KYCReader
	syncs    SyncAppender
	events   EventPublisher
	registry CatalogPusher
	contexts beckn.ContextBuilder
	bppDesc  model.Descriptor
	log      *zap.Logger
}

func NewCoordinator(
	stores StoreReader,
	products ProductLister,
	kyc KYCReader,
	syncs SyncAppender,
	events EventPublisher,
	registry CatalogPusher,
	contexts beckn.ContextBuilder,
	bppDesc model.Descriptor,
	log *zap.Logger,
) *Coordinator {
	return &Coordinator{
		stores:   stores,
		products: products,
		kyc:      kyc,
		syncs:    syncs,
		events:   events,
		registry: registry,
		contexts: contexts,
		bppDesc:  bppDesc,
		log:      log,
	}
}

// Sync validates preconditions in order (first failure wins), projects
// the active catalog, pushes it to the gateway when one is configured,
// and appends one sync record. Nothing is written until every step
// before the record has succeeded.
func (c *Coordinator) Sync(ctx context.Context, storeID string) (SyncResult, error) {
	s, err := c.stores.GetByID(ctx, storeID)
	if err != nil {
		return SyncResult{}, err
	}
	if !s.ONDCEnabled {
		return SyncResult{}, ErrNotEnabled
	}

	kyc, err := c.kyc.Get(ctx, s.StoreID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return SyncResult{}, ErrKYCRequired
		}
		return SyncResult{}, err
	}
	if kyc.Status != model.KYCStatusVerified {
		return SyncResult{}, ErrKYCRequired
	}

	products, err := c.products.ListActive(ctx, s.StoreID)
	if err != nil {
		return SyncResult{}, err
	}

	bctx, err := c.contexts.Build("on_search", "")
	if err != nil {
		return SyncResult{}, err
	}

	envelope := model.CatalogEnvelope{
		Context: bctx,
		Message: model.CatalogMessage{
			Catalog: model.Catalog{
				BPPDescriptor: &c.bppDesc,
				BPPProviders:  []model.Provider{beckn.ProjectProvider(s, products)},
			},
		},
	}

	if c.registry.Enabled() {
		if err := c.registry.PushCatalog(ctx, envelope); err != nil {
			return SyncResult{}, fmt.Errorf("syncer: gateway push: %w", err)
		}
	}

	syncedAt := time.Now().UTC()
	rec := model.SyncRecord{
		StoreID:      s.StoreID,
		SyncedAt:     syncedAt,
		ProductCount: len(products),
		Status:       "synced",
		Payload:      envelope,
	}
	if err := c.syncs.Append(ctx, rec); err != nil {
		return SyncResult{}, err
	}

	// Fire-and-forget; the sync itself already succeeded.
	if err := c.events.PublishCatalogSynced(ctx, model.CatalogSynced{
		StoreID:      s.StoreID,
		ProductCount: len(products),
		SyncedAt:     syncedAt.Format(time.RFC3339),
		Domain:       bctx.Domain,
	}); err != nil {
		c.log.Warn("catalog synced event publish failed",
			zap.String("store_id", s.StoreID), zap.Error(err))
	}

	return SyncResult{ProductCount: len(products), SyncedAt: syncedAt}, nil
}
