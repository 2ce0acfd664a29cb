package cache

import (
	"sync"
	"time"

	"github.com/nutrifactor/backend/internal/domain"
)

// cacheItem is one cached food record with its expiration.
type cacheItem struct {
	record     *domain.RawFoodRecord
	expiration time.Time
}

// FoodCache is a thread-safe in-memory cache of fetched food records keyed
// by external id, with TTL support.
type FoodCache struct {
	data  map[int64]cacheItem
	ttl   time.Duration
	mutex sync.RWMutex
}

// NewFoodCache creates a food cache. Entries expire after ttl; a cleanup
// goroutine sweeps expired entries every 10 minutes.
func NewFoodCache(ttl time.Duration) *FoodCache {
	if ttl <= 0 {
		ttl = 720 * time.Hour
	}
	c := &FoodCache{
		data: make(map[int64]cacheItem),
		ttl:  ttl,
	}
	go c.cleanupExpired()
	return c
}

// Get retrieves a record, reporting whether a live entry was found.
func (c *FoodCache) Get(fdcID int64) (*domain.RawFoodRecord, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[fdcID]
	if !exists || time.Now().After(item.expiration) {
		return nil, false
	}
	return item.record, true
}

// Put stores a record under its external id.
func (c *FoodCache) Put(fdcID int64, record *domain.RawFoodRecord) {
	if record == nil {
		return
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[fdcID] = cacheItem{
		record:     record,
		expiration: time.Now().Add(c.ttl),
	}
}

// Has checks whether a live entry exists for the id.
func (c *FoodCache) Has(fdcID int64) bool {
	_, ok := c.Get(fdcID)
	return ok
}

// Size returns the current number of entries, expired or not.
func (c *FoodCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes every entry.
func (c *FoodCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[int64]cacheItem)
}

// cleanupExpired removes expired entries periodically.
func (c *FoodCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for id, item := range c.data {
			if now.After(item.expiration) {
				delete(c.data, id)
			}
		}
		c.mutex.Unlock()
	}
}
