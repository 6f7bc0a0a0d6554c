package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers which event IDs have been processed so a
// redelivered notification is applied at most once.
type IdempotencyStore interface {
	// MarkProcessed records an event ID for ttl. It reports false when
	// the ID was already recorded, which is the duplicate signal.
	MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether an event ID has been recorded
	IsProcessed(ctx context.Context, eventID string) (bool, error)

	// Close releases the store's resources
	Close() error
}

// IdempotencyConfig controls duplicate suppression on event handlers
type IdempotencyConfig struct {
	// TTL bounds how long a processed event ID is remembered. After it
	// expires, the same ID would be processed again.
	TTL time.Duration

	// Enabled turns duplicate suppression off entirely when false
	Enabled bool
}

// DefaultIdempotencyConfig remembers event IDs for a day, which covers
// the identity provider's webhook retry window
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
