package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/preston-bernstein/rink-scoreboard/internal/config"
	"github.com/preston-bernstein/rink-scoreboard/internal/logging"
	"github.com/preston-bernstein/rink-scoreboard/internal/store"
	"github.com/preston-bernstein/rink-scoreboard/internal/store/sqlite"
)

// Backend constructors are vars so tests can avoid real network dependencies.
var (
	openRedis = func(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
		return store.NewRedisStore(ctx, store.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}
	openPostgres = func(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
		return store.NewPostgresStore(ctx, cfg.DatabaseURL)
	}
	openSQLite = func(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
		if dir := filepath.Dir(cfg.SQLitePath); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		return sqlite.Open(ctx, cfg.SQLitePath)
	}
)

// OpenStore builds the slot backend named by cfg.Driver. Redis, Postgres and SQLite
// backends are wrapped with retries. Memory and file slots are returned bare.
func OpenStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Driver {
	case config.DriverMemory:
		return store.NewMemoryStore(), nil
	case config.DriverFile, "":
		logging.Info(logger, "store opened", logging.FieldStore, config.DriverFile)
		return store.NewFSStore(cfg.Dir), nil
	case config.DriverRedis:
		st, err = openRedis(ctx, cfg)
	case config.DriverPostgres:
		st, err = openPostgres(ctx, cfg)
	case config.DriverSQLite:
		st, err = openSQLite(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Driver, err)
	}
	logging.Info(logger, "store opened", logging.FieldStore, cfg.Driver)
	return store.NewRetryingStore(st, logger, cfg.RetryAttempts, 0), nil
}

// openStoreOrMemory falls back to an in-memory slot so the scoreboard stays usable
// when the configured backend is unreachable.
func openStoreOrMemory(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) store.Store {
	st, err := OpenStore(ctx, cfg, logger)
	if err == nil {
		return st
	}
	logging.Warn(logger, "store unavailable, keeping scoreboard in memory",
		logging.FieldStore, cfg.Driver,
		"error", err,
	)
	return store.NewMemoryStore()
}
