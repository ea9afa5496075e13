package cli

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"

	"smart-note-service/internal/app"
	"smart-note-service/internal/config"
	"smart-note-service/internal/infra/memory"
	pgstore "smart-note-service/internal/infra/postgres"
	redisstore "smart-note-service/internal/infra/redis"
	"smart-note-service/internal/infra/sqlite"
	"smart-note-service/internal/platform/logger"
)

const redisKeyPrefix = "smart-note:"

// openBlobStore connects the backend selected by storage.driver.
func openBlobStore(ctx context.Context, cfg config.Config, log *logger.Logger) (app.BlobStore, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory storage, data is lost on exit")
		return memory.NewBlobStore(), nil
	case config.DriverSQLite, "":
		if err := sqlite.EnsureDir(cfg.Storage.Path); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		store, err := sqlite.Open(ctx, cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverRedis:
		if cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("redis addr not configured")
		}
		store := redisstore.NewBlobStore(redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}), redisKeyPrefix, log)
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return store, nil
	case config.DriverPostgres:
		if err := runMigrations(ctx, cfg, log); err != nil {
			return nil, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return pgstore.NewBlobStore(pool), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// openStore loads the content store on the configured backend.
func openStore(ctx context.Context, cfg config.Config, log *logger.Logger) (*app.Store, error) {
	blobs, err := openBlobStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	store, err := app.Open(ctx, blobs,
		app.WithLogger(log),
		app.WithLatency(config.Duration(cfg.Storage.Latency, 0)),
	)
	if err != nil {
		blobs.Close()
		return nil, err
	}
	return store, nil
}
