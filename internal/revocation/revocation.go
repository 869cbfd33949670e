// Package revocation tracks revoked token IDs until their tokens
// would have expired anyway. Stores deal in token IDs only; parsing
// token strings is the caller's concern.
package revocation

import (
	"context"
	"errors"
	"time"
)

// ErrStoreClosed indicates that a store has been closed.
var ErrStoreClosed = errors.New("revocation store is closed")

// Store is the storage backend for revoked token IDs.
type Store interface {
	// Add records tokenID as revoked until expiresAt.
	Add(ctx context.Context, tokenID string, expiresAt time.Time) error

	// Contains reports whether tokenID is currently revoked.
	Contains(ctx context.Context, tokenID string) (bool, error)

	// Remove drops tokenID from the store.
	Remove(ctx context.Context, tokenID string) error

	// Cleanup removes entries whose expiry has passed and reports how
	// many were dropped.
	Cleanup(ctx context.Context) (int, error)

	// Size returns the current number of revoked IDs.
	Size(ctx context.Context) (int, error)

	// Close releases the store's resources.
	Close() error
}

// Config tunes a Manager.
type Config struct {
	// CleanupInterval specifies how often expired entries are removed.
	CleanupInterval time.Duration

	// MaxSize caps the number of entries an in-memory store keeps.
	MaxSize int

	// EnableAutoCleanup starts a background cleanup loop.
	EnableAutoCleanup bool
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		CleanupInterval:   5 * time.Minute,
		MaxSize:           100000,
		EnableAutoCleanup: true,
	}
}
