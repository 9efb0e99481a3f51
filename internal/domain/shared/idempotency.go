package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers request keys so replayed mutation submissions
// (double-clicked forms, retried HTTP calls) are applied at most once.
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL.
	// Returns true if the key was newly marked, false if it already existed.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a key has already been processed
	IsProcessed(ctx context.Context, key string) (bool, error)
}
