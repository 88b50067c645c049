package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers event IDs that have already been handled so
// redelivered events can be skipped.
type IdempotencyStore interface {
	// MarkProcessed records the event ID for ttl. It reports true when
	// the ID was newly recorded, false when a live entry already exists.
	MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether a live entry exists for the event ID.
	IsProcessed(ctx context.Context, eventID string) (bool, error)

	Close() error
}

// IdempotencyConfig controls duplicate-event suppression.
type IdempotencyConfig struct {
	// TTL bounds how long an event ID stays recorded. After expiry the
	// same ID is handled again.
	TTL time.Duration

	// Enabled turns the check off entirely when false.
	Enabled bool
}

func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
