package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"
	"plantshop/internal/config"
	"plantshop/internal/logging"
	cartrepo "plantshop/internal/repository/cart"
	plantrepo "plantshop/internal/repository/plant"
	"plantshop/internal/seed"
	catalogsvc "plantshop/internal/service/catalog"
	"plantshop/internal/storage"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.New("seed", cfg.LogDev)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	err = run(cfg, logger)
	_ = logger.Sync()
	if err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
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

	sessionID, cart, err := seed.Apply(ctx,
		catalogsvc.New(plantRepo, cfg.CatalogPerPage),
		cartrepo.NewSnapshot(store, logger.Named("cart")),
		seed.Options{SessionID: os.Getenv("SEED_SESSION_ID"), Logger: logger},
	)
	if err != nil {
		return fmt.Errorf("seed apply: %w", err)
	}

	logger.Info("seed applied",
		zap.String("session", sessionID),
		zap.Int("lines", len(cart.Items)),
		zap.Int("total_items", cart.TotalItems))
	return nil
}
