package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers idempotency keys that have already entered the
// pipeline. It is an advisory fast path in front of the storage-level
// uniqueness constraints; only a hit is authoritative. A miss never means a
// key is new, so callers must still rely on the database constraint.
type IdempotencyStore interface {
	// MarkProcessed marks a key as seen with a TTL.
	// Returns true if the key was newly marked, false if it was already present.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks whether a key has already been seen.
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for the idempotency fast path
type IdempotencyConfig struct {
	// TTL is the time-to-live for seen keys. After this duration the same
	// key falls through to the database constraint check again.
	TTL time.Duration

	// Enabled determines whether the fast path is consulted at all
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
