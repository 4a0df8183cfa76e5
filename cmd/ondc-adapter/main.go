package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"ondc-seller-adapter/internal/audit"
	"ondc-seller-adapter/internal/beckn"
	"ondc-seller-adapter/internal/config"
	"ondc-seller-adapter/internal/httpapi"
	"ondc-seller-adapter/internal/kstream"
	"ondc-seller-adapter/internal/model"
	"ondc-seller-adapter/internal/registry"
	"ondc-seller-adapter/internal/store"
	"ondc-seller-adapter/internal/syncer"
)

func main() {
	// Best-effort .env load for local development.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := store.NewClient(cfg.RedisAddr)
	stores := store.NewStores(rdb)
	products := store.NewProducts(rdb)
	kyc := store.NewKYC(rdb)
	orders := store.NewOrders(rdb)
	syncs := store.NewSyncs(rdb)

	producer := kstream.NewProducer(cfg.KafkaBroker)
	contexts := beckn.ContextBuilder{
		SubscriberID:  cfg.SubscriberID,
		SubscriberURL: cfg.SubscriberURL,
		Domain:        cfg.Domain,
		CoreVersion:   cfg.CoreVersion,
	}
	gateway := registry.NewClient(cfg.RegistryURL, cfg.SubscriberID, beckn.NewSigner(cfg.SigningKey))

	bppDescriptor := model.Descriptor{
		Name:      cfg.PlatformName,
		ShortDesc: cfg.PlatformShortDesc,
		LongDesc:  cfg.PlatformLongDesc,
		Images:    []model.Image{{URL: cfg.PlatformLogoURL}},
	}
	coordinator := syncer.NewCoordinator(stores, products, kyc, syncs, producer, gateway, contexts, bppDescriptor, logger)

	webhooks := httpapi.NewWebhookService(stores, products, orders, producer, contexts, cfg.SettlementUPI, logger)
	retail := httpapi.NewRetailService(stores, kyc, syncs, orders, coordinator, contexts, logger)

	// Audit consumers run until shutdown; a consumer error is logged
	// rather than fatal so the webhook surface stays up.
	auditWriter := audit.NewWriter(cfg.KafkaBroker, cfg.AuditDir, logger)
	go func() {
		if err := auditWriter.RunOrderLog(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("order audit consumer stopped", zap.Error(err))
		}
	}()
	go func() {
		if err := auditWriter.RunSyncLog(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("sync audit consumer stopped", zap.Error(err))
		}
	}()

	r := mux.NewRouter()
	httpapi.RegisterRoutes(r, webhooks, retail)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logger.Info("shutting down")
		cancel()
		_ = server.Shutdown(context.Background())
	}()

	logger.Info("ONDC seller adapter listening", zap.String("addr", cfg.HTTPAddr))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
