package cache

import (
	"context"
	"sync"
	"time"

	"github.com/platecost/backend/internal/domain"
)

// cacheItem represents a single quote in the cache with expiration
type cacheItem struct {
	Quote      *domain.ProviderQuote
	Expiration time.Time
}

// MemoryCache is a thread-safe in-memory price cache with TTL support.
// Entries are evicted by the periodic sweep after TTL expiry, not on read;
// an expired entry simply reports a miss until the sweep removes it.
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory price cache
func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{
		data: make(map[string]cacheItem),
	}

	// Sweep expired entries every 10 minutes
	go cache.cleanupExpired()

	return cache
}

// Get retrieves a quote from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) (*domain.ProviderQuote, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return nil, domain.ErrCacheMiss
	}

	if time.Now().After(item.Expiration) {
		return nil, domain.ErrCacheMiss
	}

	return item.Quote, nil
}

// Set stores a quote in the cache with TTL
func (c *MemoryCache) Set(ctx context.Context, key string, quote *domain.ProviderQuote, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheItem{
		Quote:      quote,
		Expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a quote from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// cleanupExpired removes expired entries from the cache periodically
func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for key, item := range c.data {
			if now.After(item.Expiration) {
				delete(c.data, key)
			}
		}
		c.mutex.Unlock()
	}
}

// Size returns the current number of items in the cache (for debugging/monitoring)
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all items from the cache
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheItem)
}
