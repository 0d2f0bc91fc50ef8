// Package usage meters upstream API requests against the provider's
// per-key daily quota. Counters are per UTC day; nothing else is persisted.
package usage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Meter counts one upstream request for the given UTC day and returns the
// day's running total.
type Meter interface {
	Record(ctx context.Context, day time.Time) (int64, error)
}

// MemoryMeter is the in-process default. Safe for concurrent use.
type MemoryMeter struct {
	mu     sync.Mutex
	counts map[string]int64
}

func NewMemoryMeter() *MemoryMeter {
	return &MemoryMeter{counts: make(map[string]int64)}
}

func (m *MemoryMeter) Record(_ context.Context, day time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := day.UTC().Format(time.DateOnly)
	m.counts[k]++
	return m.counts[k], nil
}

// RedisMeter shares daily counters across processes running against the
// same upstream key. Keys expire two days after their day ends.
type RedisMeter struct {
	client *redis.Client
	prefix string
}

func NewRedisMeter(client *redis.Client) *RedisMeter {
	return &RedisMeter{client: client, prefix: "stockpulse:usage:news:"}
}

func (m *RedisMeter) Record(ctx context.Context, day time.Time) (int64, error) {
	key := m.prefix + day.UTC().Format(time.DateOnly)
	n, err := m.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("usage incr: %w", err)
	}
	if n == 1 {
		if err := m.client.Expire(ctx, key, 48*time.Hour).Err(); err != nil {
			return n, fmt.Errorf("usage expire: %w", err)
		}
	}
	return n, nil
}
