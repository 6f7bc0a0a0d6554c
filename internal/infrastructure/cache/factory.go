package cache

import (
	"fmt"

	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/financetracking/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore creates an idempotency store from configuration.
// Redis is used when enabled, with an in-memory fallback when the
// connection fails. Single-instance deployments run fine without Redis.
func NewIdempotencyStore(cfg config.Config, logger *zap.Logger) (shared.IdempotencyStore, error) {
	if !cfg.Redis.Enabled {
		logger.Info("using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(), nil
	}

	store, err := NewRedisIdempotencyStore(RedisConfig{
		Host:      cfg.Redis.Host,
		Port:      cfg.Redis.Port,
		Password:  cfg.Redis.Password,
		DB:        cfg.Redis.DB,
		KeyPrefix: cfg.Event.IdempotencyKeyPrefix,
	})
	if err != nil {
		if cfg.App.Env == "production" {
			return nil, fmt.Errorf("redis required for idempotency but unavailable: %w", err)
		}
		logger.Warn("Redis unavailable, falling back to in-memory idempotency store. "+
			"Duplicate event processing is possible across instances.",
			zap.Error(err),
		)
		return NewInMemoryIdempotencyStore(), nil
	}

	logger.Info("using Redis idempotency store")
	return store, nil
}
