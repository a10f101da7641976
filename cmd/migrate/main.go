package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"
	"plantshop/internal/config"
	"plantshop/internal/db"
	"plantshop/internal/logging"
	"plantshop/internal/migrate"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.New("migrate", cfg.LogDev)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	err = run(cfg, logger)
	_ = logger.Sync()
	if err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, db.Options{
		MaxConns: 1,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := migrate.Version(ctx, pool)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	logger.Info("migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
