// Package storage opens the slot backend selected by configuration.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"plantshop/internal/config"
	"plantshop/internal/db"
	"plantshop/internal/logging"
	"plantshop/internal/migrate"
	"plantshop/internal/repository/slot"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Open connects to cfg.StoreDriver and returns the store with a function
// releasing it. The postgres schema is migrated before use.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (slot.Repository, func(), error) {
	logger = logging.OrNop(logger)

	switch cfg.StoreDriver {
	case DriverSQLite, "":
		store, err := slot.OpenSQLite(cfg.SQLitePath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		logger.Info("slot store ready", zap.String("driver", DriverSQLite), zap.String("path", cfg.SQLitePath))
		return store, func() { _ = store.Close() }, nil

	case DriverPostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString, db.Options{
			MaxConns: int32(cfg.DBMaxConns),
			Logger:   logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect db: %w", err)
		}
		if err := migrate.Apply(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("slot store ready", zap.String("driver", DriverPostgres))
		return slot.NewPostgres(pool, logger), pool.Close, nil

	case DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		logger.Info("slot store ready",
			zap.String("driver", DriverRedis),
			zap.String("addr", cfg.RedisAddr),
			zap.Duration("ttl", cfg.RedisTTL))
		return slot.NewRedis(client, cfg.RedisTTL), func() { _ = client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
