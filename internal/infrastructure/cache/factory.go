package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tecpap/backend/internal/domain/shared"
	"github.com/tecpap/backend/internal/infrastructure/config"
)

// NewIdempotencyStore creates the idempotency store selected by config.
// The redis backend falls back to the in-memory store when Redis is
// unreachable; the fast path is advisory, so degraded beats down.
func NewIdempotencyStore(cfg *config.Config, logger *zap.Logger) (shared.IdempotencyStore, error) {
	switch cfg.Idempotency.Backend {
	case "redis":
		store, err := NewRedisIdempotencyStore(cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, using in-memory idempotency store",
				zap.Error(err))
			return NewInMemoryIdempotencyStore(), nil
		}
		return store, nil
	case "memory":
		return NewInMemoryIdempotencyStore(), nil
	default:
		return nil, fmt.Errorf("unknown idempotency backend %q", cfg.Idempotency.Backend)
	}
}
