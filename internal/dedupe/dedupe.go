// Package dedupe provides atomic "first one wins" markers keyed by room and event kind.
package dedupe

import (
	"context"
	"sync"
	"time"

	"livekit-henryk/internal/clients/redis"
)

// Marker claims a key at most once per retention window.
type Marker interface {
	// MarkOnce returns true only for the first caller to claim key.
	MarkOnce(ctx context.Context, key string) (bool, error)
	// Release drops a claim so the key can be processed again.
	Release(ctx context.Context, key string) error
}

// MemoryMarker keeps claims in process memory
type MemoryMarker struct {
	mu     sync.Mutex
	ttl    time.Duration
	claims map[string]time.Time
	now    func() time.Time
}

func NewMemoryMarker(ttl time.Duration) *MemoryMarker {
	return &MemoryMarker{
		ttl:    ttl,
		claims: make(map[string]time.Time),
		now:    time.Now,
	}
}

func (m *MemoryMarker) MarkOnce(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.evict(now)

	if _, ok := m.claims[key]; ok {
		return false, nil
	}
	m.claims[key] = now.Add(m.ttl)
	return true, nil
}

func (m *MemoryMarker) Release(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.claims, key)
	m.mu.Unlock()
	return nil
}

// Len returns the number of live claims
func (m *MemoryMarker) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evict(m.now())
	return len(m.claims)
}

// evict must be called with mu held
func (m *MemoryMarker) evict(now time.Time) {
	for k, expires := range m.claims {
		if !now.Before(expires) {
			delete(m.claims, k)
		}
	}
}

const redisKeyPrefix = "livekit-henryk:dedupe:"

// RedisMarker shares claims across instances with SET NX
type RedisMarker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisMarker(client *redis.Client, ttl time.Duration) *RedisMarker {
	return &RedisMarker{client: client, ttl: ttl}
}

func (m *RedisMarker) MarkOnce(ctx context.Context, key string) (bool, error) {
	return m.client.SetNX(ctx, redisKeyPrefix+key, "1", m.ttl)
}

func (m *RedisMarker) Release(ctx context.Context, key string) error {
	return m.client.Del(ctx, redisKeyPrefix+key)
}
