package revocation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "jwtrev"

// redisStore implements Store on a shared Redis instance, for
// deployments where revocations must be visible across processes.
// Expiry is delegated to Redis key TTLs.
type redisStore struct {
	client *redis.Client
	prefix string

	mu     sync.RWMutex
	closed bool
}

// NewRedisStore creates a revocation store on the given client. The
// client is owned by the caller and is not closed with the store.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client, prefix: redisKeyPrefix}
}

func (s *redisStore) key(tokenID string) string {
	return s.prefix + ":" + tokenID
}

func (s *redisStore) Add(ctx context.Context, tokenID string, expiresAt time.Time) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrStoreClosed
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already past expiry; the token cannot validate anyway.
		return nil
	}

	if err := s.client.Set(ctx, s.key(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis revocation set: %w", err)
	}
	return nil
}

func (s *redisStore) Contains(ctx context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, ErrStoreClosed
	}

	n, err := s.client.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis revocation lookup: %w", err)
	}
	return n > 0, nil
}

func (s *redisStore) Remove(ctx context.Context, tokenID string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrStoreClosed
	}

	if err := s.client.Del(ctx, s.key(tokenID)).Err(); err != nil {
		return fmt.Errorf("redis revocation delete: %w", err)
	}
	return nil
}

// Cleanup is a no-op: Redis drops revocations itself through key TTLs.
func (s *redisStore) Cleanup(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, ErrStoreClosed
	}
	return 0, nil
}

func (s *redisStore) Size(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, ErrStoreClosed
	}

	var cursor uint64
	total := 0
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+":*", 512).Result()
		if err != nil {
			return 0, fmt.Errorf("redis revocation scan: %w", err)
		}
		total += len(keys)
		if next == 0 {
			return total, nil
		}
		cursor = next
	}
}

func (s *redisStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
