package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/campbellchri/clara-backend/internal/middleware"
	"github.com/redis/go-redis/v9"
)

const idempotencyKeyPrefix = "clara_idempotency:"

// RedisIdempotencyStore keeps replayable responses in Redis so every instance sees them.
type RedisIdempotencyStore struct {
	client *redis.Client
}

// NewRedisIdempotencyStore creates a Redis backed idempotency store
func NewRedisIdempotencyStore(client *redis.Client) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{client: client}
}

var _ middleware.IdempotencyStore = (*RedisIdempotencyStore)(nil)

// Lookup retrieves a stored response. Unknown keys return nil without error.
func (s *RedisIdempotencyStore) Lookup(ctx context.Context, key string) (*middleware.StoredResponse, error) {
	raw, err := s.client.Get(ctx, idempotencyKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get idempotency key: %w", err)
	}

	var resp middleware.StoredResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode stored response: %w", err)
	}
	return &resp, nil
}

// Reserve claims key with a pending placeholder using SETNX.
func (s *RedisIdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	raw, err := json.Marshal(middleware.StoredResponse{Pending: true})
	if err != nil {
		return false, fmt.Errorf("failed to encode placeholder: %w", err)
	}
	ok, err := s.client.SetNX(ctx, idempotencyKeyPrefix+key, raw, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve idempotency key: %w", err)
	}
	return ok, nil
}

// Store replaces the placeholder for key with the final response.
func (s *RedisIdempotencyStore) Store(ctx context.Context, key string, resp middleware.StoredResponse, ttl time.Duration) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to encode stored response: %w", err)
	}
	if err := s.client.Set(ctx, idempotencyKeyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set idempotency key: %w", err)
	}
	return nil
}

// Release deletes key.
func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete idempotency key: %w", err)
	}
	return nil
}

// memorySweepInterval is the minimum time between scans for expired entries.
const memorySweepInterval = time.Minute

type memoryEntry struct {
	resp      middleware.StoredResponse
	expiresAt time.Time
}

// MemoryIdempotencyStore is a single-process store used when Redis is not configured.
// Expired entries are swept on writes, at most once per memorySweepInterval.
type MemoryIdempotencyStore struct {
	mu        sync.Mutex
	entries   map[string]memoryEntry
	nextSweep time.Time
	now       func() time.Time
}

// NewMemoryIdempotencyStore creates an in-process idempotency store
func NewMemoryIdempotencyStore() *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{entries: make(map[string]memoryEntry), now: time.Now}
}

var _ middleware.IdempotencyStore = (*MemoryIdempotencyStore)(nil)

func (s *MemoryIdempotencyStore) Reserve(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)
	if existing, ok := s.entries[key]; ok && now.Before(existing.expiresAt) {
		return false, nil
	}
	s.entries[key] = memoryEntry{resp: middleware.StoredResponse{Pending: true}, expiresAt: now.Add(ttl)}
	return true, nil
}

func (s *MemoryIdempotencyStore) Lookup(_ context.Context, key string) (*middleware.StoredResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, key)
		return nil, nil
	}
	resp := entry.resp
	return &resp, nil
}

func (s *MemoryIdempotencyStore) Store(_ context.Context, key string, resp middleware.StoredResponse, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)
	s.entries[key] = memoryEntry{resp: resp, expiresAt: now.Add(ttl)}
	return nil
}

func (s *MemoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemoryIdempotencyStore) sweepLocked(now time.Time) {
	if now.Before(s.nextSweep) {
		return
	}
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
	s.nextSweep = now.Add(memorySweepInterval)
}
