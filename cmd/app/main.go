// File: cmd/app/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vendor-pricelist-platform/internal/config"
	pg "vendor-pricelist-platform/internal/infra/db/postgres"
	"vendor-pricelist-platform/internal/infra/i18n"
	"vendor-pricelist-platform/internal/infra/logging"
	"vendor-pricelist-platform/internal/infra/metrics"
	red "vendor-pricelist-platform/internal/infra/redis"
	"vendor-pricelist-platform/internal/infra/sched"
	"vendor-pricelist-platform/internal/infra/security"
	"vendor-pricelist-platform/internal/infra/web"
	"vendor-pricelist-platform/internal/usecase"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Postgres ----
	pool := pg.MustConnectPostgres(cfg.Database.URL)
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()
	rateLimiter := red.NewRateLimiter(redisClient)

	// ---- Encryption ----
	encKey := cfg.Security.EncryptionKey
	if len(encKey) != 32 {
		logger.Warn().Msg("security.encryption_key not set or not 32 bytes; falling back to dev key (INSECURE)")
		encKey = "0123456789abcdef0123456789abcdef"
	}
	encSvc, err := security.NewEncryptionService(encKey)
	if err != nil {
		log.Fatalf("encryption: %v", err)
	}

	// ---- Repositories ----
	codeRepo := pg.NewRedemptionCodeRepo(pool)
	windowRepo := pg.NewAccessWindowRepo(pool)
	vendorRepo := pg.NewVendorRepoCacheDecorator(pg.NewVendorRepo(pool, encSvc), redisClient, cfg.Redis.TTL)
	packageRepo := pg.NewPackageRepo(pool)
	addonRepo := pg.NewAddonRepo(pool)
	discountRepo := pg.NewDiscountRepo(pool)
	dealRepo := pg.NewDealRepo(pool)
	invoiceRepo := pg.NewInvoiceRepo(pool)
	receiptRepo := pg.NewReceiptRepo(pool)
	mouRepo := pg.NewMouRepo(pool)
	txm := pg.NewTxManager(pool)

	// ---- Use cases ----
	activationUC := usecase.NewActivationUseCase(codeRepo, windowRepo, txm)
	catalogUC := usecase.NewCatalogUseCase(vendorRepo, packageRepo, addonRepo, discountRepo, windowRepo)
	pricelistUC := usecase.NewPricelistUseCase(vendorRepo, packageRepo, addonRepo, discountRepo, windowRepo)
	dealUC := usecase.NewDealUseCase(dealRepo, packageRepo, addonRepo, windowRepo)
	invoiceUC := usecase.NewInvoiceUseCase(invoiceRepo, receiptRepo, dealRepo, windowRepo, txm)
	mouUC := usecase.NewMouUseCase(mouRepo, dealRepo, windowRepo)
	statsUC := usecase.NewStatsUseCase(windowRepo, vendorRepo)

	// ---- Web ----
	translator, err := i18n.NewTranslator(i18n.LocalesFS, cfg.I18n.DefaultLocale)
	if err != nil {
		log.Fatalf("i18n: %v", err)
	}
	auth := web.NewAuthManager(cfg.Auth.JWTSecret, !cfg.Runtime.Dev, "", cfg.Auth.SessionTTL)
	srv := web.NewServer(web.ServerDeps{
		Activation: activationUC,
		Catalog:    catalogUC,
		Pricelist:  pricelistUC,
		Deals:      dealUC,
		Invoices:   invoiceUC,
		Mou:        mouUC,
		Stats:      statsUC,

		Auth:    auth,
		Limiter: rateLimiter,

		RedeemLimit:        cfg.RateLimit.RedeemPerHour,
		SuperadminPassword: cfg.Auth.SuperadminPassword,

		Translator: translator,
		Logger:     logger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Background workers ----
	sweeper := sched.NewAccountSweeper(cfg.Scheduler.SweepInterval, windowRepo, logger)
	go func() { _ = sweeper.Run(ctx) }()

	// Pool stats feed the db gauges on the same cadence as the sweeper.
	go func() {
		ticker := time.NewTicker(cfg.Scheduler.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				st := pool.Stat()
				metrics.SetDBPoolStats(st.TotalConns(), st.IdleConns(), st.AcquiredConns())
			}
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown error")
	}
}
