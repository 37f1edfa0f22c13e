package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/1SadFox/psyco/internal/config"
	"github.com/1SadFox/psyco/internal/db"
	"github.com/1SadFox/psyco/internal/repository"
)

const pingTimeout = 2 * time.Second

// Open builds the key-value store selected by cfg.StorageBackend. The returned close
// func releases connections and is never nil.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.KVStore, func(), error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	noop := func() {}

	switch cfg.StorageBackend {
	case config.BackendMemory:
		logger.Warn("memory storage selected, journal will not survive restarts")
		return repository.NewMemoryKVStore(), noop, nil

	case config.BackendFile:
		store, err := repository.NewFileKVStore(cfg.StoragePath)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil

	case config.BackendSQLite:
		store, err := repository.NewSQLiteKVStore(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn("sqlite close failed", zap.Error(err))
			}
		}, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := client.Ping(ctxPing).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("redis ping: %w", err)
		}
		return repository.NewRedisKVStore(client, cfg.RedisPrefix, cfg.StorageTimeout()), func() {
			_ = client.Close()
		}, nil

	case config.BackendPostgres:
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			return nil, noop, fmt.Errorf("db connect: %w", err)
		}
		ctxPing, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := db.Ping(ctxPing, pool); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("db ping: %w", err)
		}
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return repository.NewPgKVStore(pool, cfg.StorageTimeout()), pool.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
