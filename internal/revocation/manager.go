package revocation

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Manager coordinates a Store and its periodic cleanup.
type Manager struct {
	store  Store
	config Config
	mu     sync.RWMutex
	closed bool

	cleanupTicker *time.Ticker
	stopCleanup   chan struct{}
	cleanupWg     sync.WaitGroup
}

// NewManager wraps store and, when configured, starts the cleanup loop.
func NewManager(store Store, config Config) *Manager {
	m := &Manager{
		store:       store,
		config:      config,
		stopCleanup: make(chan struct{}),
	}
	if config.EnableAutoCleanup && config.CleanupInterval > 0 {
		m.startAutoCleanup()
	}
	return m
}

// Revoke records tokenID as revoked until expiresAt.
func (m *Manager) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return fmt.Errorf("revocation manager is closed")
	}
	if tokenID == "" {
		return fmt.Errorf("token ID cannot be empty")
	}
	return m.store.Add(ctx, tokenID, expiresAt)
}

// IsRevoked reports whether tokenID is currently revoked. The empty
// ID is never revoked.
func (m *Manager) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return false, fmt.Errorf("revocation manager is closed")
	}
	if tokenID == "" {
		return false, nil
	}
	return m.store.Contains(ctx, tokenID)
}

// Close stops the cleanup loop and closes the underlying store.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	if m.cleanupTicker != nil {
		m.cleanupTicker.Stop()
		close(m.stopCleanup)
		m.cleanupWg.Wait()
	}
	return m.store.Close()
}

func (m *Manager) startAutoCleanup() {
	m.cleanupTicker = time.NewTicker(m.config.CleanupInterval)
	m.cleanupWg.Add(1)

	go func() {
		defer m.cleanupWg.Done()
		for {
			select {
			case <-m.cleanupTicker.C:
				// Failed cleanups retry on the next tick.
				_, _ = m.store.Cleanup(context.Background())
			case <-m.stopCleanup:
				return
			}
		}
	}()
}
