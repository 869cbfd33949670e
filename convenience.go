package jwt

import (
	"sync"
	"sync/atomic"
	"time"
)

// Package-level helpers for simple use cases. Processors are cached
// per secret so repeated calls share signing state and revocations.
// Production services with their own lifecycle should use the
// Processor API directly.

type cacheEntry struct {
	processor  *Processor
	lastAccess atomic.Int64
	refCount   atomic.Int32
}

type processorCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
}

var cache = &processorCache{
	entries: make(map[string]*cacheEntry, 16),
}

const maxCacheSize = 100

// IssueToken issues a token using a cached processor for secretKey.
// The secret must be at least 32 bytes.
func IssueToken(secretKey string, claims Claims) (string, error) {
	processor, release, err := getProcessor(secretKey)
	if err != nil {
		return "", err
	}
	defer release()

	return processor.IssueToken(claims)
}

// ValidateToken validates a token using a cached processor for
// secretKey.
func ValidateToken(secretKey, tokenString string) (*Claims, bool, error) {
	processor, release, err := getProcessor(secretKey)
	if err != nil {
		return nil, false, err
	}
	defer release()

	return processor.ValidateToken(tokenString)
}

// RevokeToken revokes a token using a cached processor for secretKey.
func RevokeToken(secretKey, tokenString string) error {
	processor, release, err := getProcessor(secretKey)
	if err != nil {
		return err
	}
	defer release()

	return processor.RevokeToken(tokenString)
}

func getProcessor(secretKey string) (*Processor, func(), error) {
	now := time.Now().Unix()

	cache.mu.RLock()
	entry, exists := cache.entries[secretKey]
	cache.mu.RUnlock()

	if exists {
		entry.lastAccess.Store(now)
		entry.refCount.Add(1)
		return entry.processor, func() { entry.refCount.Add(-1) }, nil
	}

	processor, err := New(secretKey)
	if err != nil {
		return nil, func() {}, err
	}

	cache.mu.Lock()
	defer cache.mu.Unlock()

	// Another goroutine may have cached this secret meanwhile.
	if entry, exists := cache.entries[secretKey]; exists {
		_ = processor.Close()
		entry.lastAccess.Store(now)
		entry.refCount.Add(1)
		return entry.processor, func() { entry.refCount.Add(-1) }, nil
	}

	if len(cache.entries) >= maxCacheSize {
		evictOldestLocked()
	}

	entry = &cacheEntry{processor: processor}
	entry.lastAccess.Store(now)
	entry.refCount.Store(1)
	cache.entries[secretKey] = entry

	return processor, func() { entry.refCount.Add(-1) }, nil
}

// evictOldestLocked drops the least recently used idle entry. Caller
// holds the cache write lock.
func evictOldestLocked() {
	var oldestKey string
	var oldestAccess int64

	for key, entry := range cache.entries {
		if entry.refCount.Load() > 0 {
			continue
		}
		access := entry.lastAccess.Load()
		if oldestKey == "" || access < oldestAccess {
			oldestKey = key
			oldestAccess = access
		}
	}

	if oldestKey != "" {
		entry := cache.entries[oldestKey]
		delete(cache.entries, oldestKey)
		_ = entry.processor.Close()
	}
}
