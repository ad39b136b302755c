package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/storelens/resolver/internal/domain"
)

// cacheItem holds one serialized outcome with its expiration
type cacheItem struct {
	Data       []byte
	Expiration time.Time
}

// MemoryCache is a thread-safe in-memory cache of resolved outcomes
// with TTL support. Entries are stored as JSON so a Redis-backed
// implementation can share the same shape.
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory outcome cache
func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{
		data: make(map[string]cacheItem),
	}

	// Remove expired entries every 10 minutes
	go cache.cleanupExpired()

	return cache
}

// Get retrieves a resolved outcome from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) (*domain.Outcome, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return nil, domain.ErrCacheMiss
	}

	if time.Now().After(item.Expiration) {
		return nil, domain.ErrCacheMiss
	}

	var outcome domain.Outcome
	if err := json.Unmarshal(item.Data, &outcome); err != nil {
		return nil, domain.ErrCacheMiss
	}

	return &outcome, nil
}

// Set stores a resolved outcome in the cache with TTL
func (c *MemoryCache) Set(ctx context.Context, key string, value *domain.Outcome, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheItem{
		Data:       jsonData,
		Expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes an outcome from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// Exists checks if a key exists in the cache and is not expired
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return false, nil
	}

	if time.Now().After(item.Expiration) {
		return false, nil
	}

	return true, nil
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
