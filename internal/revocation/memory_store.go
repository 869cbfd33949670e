package revocation

import (
	"context"
	"sort"
	"sync"
	"time"
)

// memoryStore implements Store with an in-process map.
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	maxSize int
	closed  bool
}

// NewMemoryStore creates an in-memory revocation store holding at
// most maxSize entries; the oldest tenth is evicted when full.
func NewMemoryStore(maxSize int) Store {
	if maxSize <= 0 {
		maxSize = DefaultConfig().MaxSize
	}
	return &memoryStore{
		entries: make(map[string]time.Time),
		maxSize: maxSize,
	}
}

func (m *memoryStore) Add(_ context.Context, tokenID string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if len(m.entries) >= m.maxSize {
		m.cleanupExpiredLocked(time.Now())
		if len(m.entries) >= m.maxSize {
			m.evictOldestLocked(m.maxSize / 10)
		}
	}

	m.entries[tokenID] = expiresAt
	return nil
}

func (m *memoryStore) Contains(_ context.Context, tokenID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return false, ErrStoreClosed
	}

	expiresAt, exists := m.entries[tokenID]
	if !exists {
		return false, nil
	}

	// Expired entries read as absent; the cleanup loop removes them so
	// reads never need a write lock.
	if time.Now().After(expiresAt) {
		return false, nil
	}
	return true, nil
}

func (m *memoryStore) Remove(_ context.Context, tokenID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	delete(m.entries, tokenID)
	return nil
}

func (m *memoryStore) Cleanup(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, ErrStoreClosed
	}
	return m.cleanupExpiredLocked(time.Now()), nil
}

func (m *memoryStore) Size(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, ErrStoreClosed
	}
	return len(m.entries), nil
}

func (m *memoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	m.entries = nil
	return nil
}

// cleanupExpiredLocked removes expired entries. Caller holds the
// write lock.
func (m *memoryStore) cleanupExpiredLocked(now time.Time) int {
	cleaned := 0
	for tokenID, expiresAt := range m.entries {
		if now.After(expiresAt) {
			delete(m.entries, tokenID)
			cleaned++
		}
	}
	return cleaned
}

// evictOldestLocked removes the count entries closest to expiry to
// make room. Caller holds the write lock.
func (m *memoryStore) evictOldestLocked(count int) {
	if count <= 0 || len(m.entries) == 0 {
		return
	}

	type entry struct {
		tokenID   string
		expiresAt time.Time
	}

	ordered := make([]entry, 0, len(m.entries))
	for tokenID, expiresAt := range m.entries {
		ordered = append(ordered, entry{tokenID, expiresAt})
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].expiresAt.Before(ordered[j].expiresAt)
	})

	for i := 0; i < len(ordered) && i < count; i++ {
		delete(m.entries, ordered[i].tokenID)
	}
}
