package cache

import (
	"context"
	"sync"
	"time"

	"github.com/carecompass/backend/internal/domain/providers"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryAdapter is an in-process CacheProvider used when Redis is disabled.
type MemoryAdapter struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryAdapter creates an empty in-memory cache
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{entries: make(map[string]memoryEntry), now: time.Now}
}

var _ providers.CacheProvider = (*MemoryAdapter)(nil)

// Get retrieves a value from cache
func (a *MemoryAdapter) Get(_ context.Context, key string) ([]byte, error) {
	a.mu.RLock()
	e, ok := a.entries[key]
	a.mu.RUnlock()

	if !ok || a.expired(e) {
		return nil, providers.ErrCacheMiss
	}
	return append([]byte(nil), e.value...), nil
}

// Set stores a value; a non-positive expiration never expires.
func (a *MemoryAdapter) Set(_ context.Context, key string, value []byte, expirationSeconds int) error {
	e := memoryEntry{value: append([]byte(nil), value...)}
	if expirationSeconds > 0 {
		e.expiresAt = a.now().Add(time.Duration(expirationSeconds) * time.Second)
	}

	a.mu.Lock()
	a.entries[key] = e
	a.mu.Unlock()
	return nil
}

// Delete removes a value from cache
func (a *MemoryAdapter) Delete(_ context.Context, key string) error {
	a.mu.Lock()
	delete(a.entries, key)
	a.mu.Unlock()
	return nil
}

// Exists checks if a live key exists in cache
func (a *MemoryAdapter) Exists(_ context.Context, key string) (bool, error) {
	a.mu.RLock()
	e, ok := a.entries[key]
	a.mu.RUnlock()
	return ok && !a.expired(e), nil
}

func (a *MemoryAdapter) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && a.now().After(e.expiresAt)
}

// Sweep drops expired entries and reports how many were removed.
func (a *MemoryAdapter) Sweep() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	removed := 0
	for key, e := range a.entries {
		if a.expired(e) {
			delete(a.entries, key)
			removed++
		}
	}
	return removed
}
