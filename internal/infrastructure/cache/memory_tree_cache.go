package cache

import (
	"context"
	"sync"
	"time"

	appcatalog "github.com/storefront/backend/internal/application/catalog"
)

// entry represents a cached payload with expiration
type entry struct {
	value     []byte
	expiresAt time.Time
}

// InMemoryTreeCache implements the category tree cache using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemoryTreeCache struct {
	mu        sync.RWMutex
	entries   map[string]entry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryTreeCache creates a new in-memory tree cache.
// It starts a background goroutine to clean up expired entries.
func NewInMemoryTreeCache() *InMemoryTreeCache {
	cache := &InMemoryTreeCache{
		entries:  make(map[string]entry),
		stopChan: make(chan struct{}),
	}

	cache.wg.Add(1)
	go cache.cleanupLoop()

	return cache
}

// Get returns the cached payload for the key, or nil on a miss
func (c *InMemoryTreeCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[key]
	if !exists || time.Now().After(e.expiresAt) {
		return nil, nil
	}
	return e.value, nil
}

// Set stores a payload under the key with the given TTL
func (c *InMemoryTreeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Invalidate drops every cached tree
func (c *InMemoryTreeCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (c *InMemoryTreeCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (c *InMemoryTreeCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes expired entries from the cache
func (c *InMemoryTreeCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// Ensure InMemoryTreeCache implements TreeCache
var _ appcatalog.TreeCache = (*InMemoryTreeCache)(nil)
