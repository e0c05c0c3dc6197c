// Package cache provides the TTL cache backends for decode results
package cache

import (
	"context"
	"sync"
	"time"

	"vindex/internal/services/decode/domain"

	"github.com/zeebo/xxh3"
)

// DefaultTTL is how long a decode result stays fresh
const DefaultTTL = 30 * 24 * time.Hour

// Key returns the stable cache key for a normalized VIN
func Key(vin string) uint64 { return xxh3.HashString(vin) }

type entry struct {
	res       domain.Result
	createdAt time.Time
}

// Memory is the in-process TTL cache. One coarse lock; the working set is
// a few thousand VINs at most. Eviction is lazy on read, no sweeper
type Memory struct {
	mu      sync.RWMutex
	entries map[uint64]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory builds a memory cache; ttl <= 0 selects DefaultTTL
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{
		entries: make(map[uint64]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get implements domain.CachePort
// Stale entries and entries from another decoder revision are absent
func (m *Memory) Get(_ context.Context, vin string) (domain.Result, bool, error) {
	k := Key(vin)

	m.mu.RLock()
	e, ok := m.entries[k]
	m.mu.RUnlock()
	if !ok {
		return domain.Result{}, false, nil
	}
	if m.now().Sub(e.createdAt) > m.ttl || e.res.Version != domain.Version {
		m.mu.Lock()
		// re-check under the write lock; a fresh Set may have raced us
		if cur, still := m.entries[k]; still && cur.createdAt.Equal(e.createdAt) {
			delete(m.entries, k)
		}
		m.mu.Unlock()
		return domain.Result{}, false, nil
	}
	return e.res, true, nil
}

// Set implements domain.CachePort, overwriting with the current timestamp
func (m *Memory) Set(_ context.Context, vin string, res domain.Result) error {
	m.mu.Lock()
	m.entries[Key(vin)] = entry{res: res, createdAt: m.now()}
	m.mu.Unlock()
	return nil
}

// Len reports the live entry count, stale included until read
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
