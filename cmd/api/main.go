package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"plantshop/internal/config"
	"plantshop/internal/httpserver"
	"plantshop/internal/logging"
	cartrepo "plantshop/internal/repository/cart"
	plantrepo "plantshop/internal/repository/plant"
	cartsvc "plantshop/internal/service/cart"
	catalogsvc "plantshop/internal/service/catalog"
	sessionsvc "plantshop/internal/service/session"
	"plantshop/internal/storage"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.New("api", cfg.LogDev)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	err = run(cfg, logger)
	_ = logger.Sync()
	if err != nil {
		logger.Fatal("api stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	shipping, err := decimal.NewFromString(cfg.ShippingFlat)
	if err != nil {
		return fmt.Errorf("invalid SHIPPING_FLAT %q: %w", cfg.ShippingFlat, err)
	}

	ctx := context.Background()
	store, closeStore, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open slot store: %w", err)
	}
	defer closeStore()

	plantRepo, err := plantrepo.NewHTTP(plantrepo.HTTPOptions{
		BaseURL: cfg.PlantsAPIURL,
		Token:   cfg.PlantsAPIToken,
		Logger:  logger.Named("plants"),
	})
	if err != nil {
		return fmt.Errorf("init plants client: %w", err)
	}
	catalogService := catalogsvc.New(plantRepo, cfg.CatalogPerPage)
	sessions := sessionsvc.NewRegistry(sessionsvc.Deps{
		Slots:   store,
		Carts:   cartrepo.NewSnapshot(store, logger.Named("cart")),
		Catalog: catalogService,
		CartOptions: cartsvc.Options{
			FlatShipping:  &shipping,
			CheckoutDelay: cfg.CheckoutDelay,
		},
		Logger: logger.Named("session"),
	})

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Store:       store,
		Catalog:     catalogService,
		Sessions:    sessions,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go sweepSessions(sweepCtx, sessions, cfg.SessionIdle)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.Stringer("signal", sig))
	case runErr = <-serverErr:
		logger.Error("server error", zap.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
	return runErr
}

// sweepSessions drops idle sessions from memory until ctx is done.
func sweepSessions(ctx context.Context, reg *sessionsvc.Registry, idle time.Duration) {
	interval := idle / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reg.Sweep(idle)
		}
	}
}
