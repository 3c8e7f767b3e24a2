package storage

import (
	"context"
	"fmt"

	"github.com/codeelevater/alumni-connect/config"
	"github.com/codeelevater/alumni-connect/pkg/db"
	"github.com/codeelevater/alumni-connect/pkg/logger"
	"github.com/codeelevater/alumni-connect/pkg/retry"
	"go.uber.org/zap"
)

// CloseFunc releases backend resources
type CloseFunc func()

// New builds the configured backend. Remote backends are wrapped with retries;
// every backend is instrumented.
func New(ctx context.Context, cfg *config.Config) (KV, CloseFunc, error) {
	noop := func() {}

	var (
		kv      KV
		closeFn CloseFunc = noop
		remote  bool
	)

	switch cfg.Storage.Backend {
	case config.BackendFile:
		fileKV, err := NewFile(cfg.Storage.Dir)
		if err != nil {
			return nil, noop, err
		}
		kv = fileKV
	case config.BackendMemory:
		kv = NewMemory()
	case config.BackendRedis:
		redisKV, err := NewRedis(ctx, RedisOptions{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if err != nil {
			return nil, noop, err
		}
		kv, remote = redisKV, true
		closeFn = func() {
			if err := redisKV.Close(); err != nil {
				logger.Warn("Failed to close redis client", zap.Error(err))
			}
		}
	case config.BackendPostgres:
		pool, err := db.NewPool(ctx, db.PoolConfig{
			URL:        cfg.Database.URL,
			MaxConns:   cfg.Database.MaxConns,
			MinConns:   cfg.Database.MinConns,
			CACertPath: cfg.Database.CACertPath,
		})
		if err != nil {
			return nil, noop, err
		}
		kv, remote = NewPostgres(pool), true
		closeFn = func() { db.Close(pool) }
	case config.BackendS3:
		kv = NewS3(S3Options{
			Bucket:          cfg.S3.Bucket,
			Endpoint:        cfg.S3.Endpoint,
			Region:          cfg.S3.Region,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Prefix:          cfg.S3.Prefix,
		})
		remote = true
	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	if remote {
		kv = WithRetry(kv, retry.StorageConfig())
	}

	logger.Info("Snapshot storage ready", zap.String("backend", kv.Name()))

	return Instrument(kv), closeFn, nil
}
