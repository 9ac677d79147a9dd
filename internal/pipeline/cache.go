package pipeline

import (
	"context"
	"sync"
	"time"

	"autoreport/internal/infrastructure"
)

// cacheEntry is one memoized run
type cacheEntry struct {
	result    *Result
	cachedAt  time.Time
	expiresAt time.Time
	hitCount  int
}

// CacheStats describes the state of a Cache
type CacheStats struct {
	Entries    int     `json:"entries"`
	MaxSize    int     `json:"max_size"`
	HitCount   int64   `json:"hit_count"`
	MissCount  int64   `json:"miss_count"`
	HitRatio   float64 `json:"hit_ratio"`
	TTLSeconds float64 `json:"ttl_seconds"`
}

// Cache memoizes run results by input fingerprint. Expired entries are
// dropped lazily on access. A Cache with maxSize <= 0 stores nothing.
type Cache struct {
	entries   map[string]cacheEntry
	mutex     sync.RWMutex
	ttl       time.Duration
	maxSize   int
	hitCount  int64
	missCount int64
	now       func() time.Time
	metrics   *infrastructure.AnalysisMetrics
}

// NewCache creates a cache. metrics may be nil.
func NewCache(ttl time.Duration, maxSize int, metrics *infrastructure.AnalysisMetrics) *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
		metrics: metrics,
	}
}

// Get returns the cached result for a fingerprint
func (c *Cache) Get(key string) (*Result, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[key]
	if exists && c.expired(entry) {
		delete(c.entries, key)
		c.metrics.RecordCacheEviction(context.Background(), 1, "ttl")
		exists = false
	}
	if !exists {
		c.missCount++
		c.metrics.RecordCacheLookup(context.Background(), false)
		return nil, false
	}

	entry.hitCount++
	c.entries[key] = entry
	c.hitCount++
	c.metrics.RecordCacheLookup(context.Background(), true)

	return entry.result, true
}

// Set stores a result, evicting expired entries first and then the oldest
// entry when the cache is full
func (c *Cache) Set(key string, result *Result) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.maxSize <= 0 || result == nil {
		return
	}

	c.purgeExpired()
	if _, replacing := c.entries[key]; !replacing && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	now := c.now()
	c.entries[key] = cacheEntry{
		result:    result,
		cachedAt:  now,
		expiresAt: now.Add(c.ttl),
	}
}

// Latest returns the most recently stored, unexpired result
func (c *Cache) Latest() (*Result, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	var latest *cacheEntry
	for key := range c.entries {
		entry := c.entries[key]
		if c.expired(entry) {
			continue
		}
		if latest == nil || entry.cachedAt.After(latest.cachedAt) {
			latest = &entry
		}
	}
	if latest == nil {
		return nil, false
	}
	return latest.result, true
}

// Invalidate removes one fingerprint and reports whether it was cached
func (c *Cache) Invalidate(key string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, ok := c.entries[key]; !ok {
		return false
	}
	delete(c.entries, key)
	c.metrics.RecordCacheEviction(context.Background(), 1, "invalidate")
	return true
}

// Clear removes every entry and returns how many were removed
func (c *Cache) Clear() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	n := len(c.entries)
	c.entries = make(map[string]cacheEntry)
	c.metrics.RecordCacheEviction(context.Background(), n, "clear")
	return n
}

// Stats returns cache statistics
func (c *Cache) Stats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	total := c.hitCount + c.missCount
	ratio := 0.0
	if total > 0 {
		ratio = float64(c.hitCount) / float64(total)
	}

	return CacheStats{
		Entries:    len(c.entries),
		MaxSize:    c.maxSize,
		HitCount:   c.hitCount,
		MissCount:  c.missCount,
		HitRatio:   ratio,
		TTLSeconds: c.ttl.Seconds(),
	}
}

func (c *Cache) expired(entry cacheEntry) bool {
	return c.ttl > 0 && c.now().After(entry.expiresAt)
}

func (c *Cache) purgeExpired() {
	n := 0
	for key, entry := range c.entries {
		if c.expired(entry) {
			delete(c.entries, key)
			n++
		}
	}
	c.metrics.RecordCacheEviction(context.Background(), n, "ttl")
}

func (c *Cache) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range c.entries {
		if oldestKey == "" || entry.cachedAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.cachedAt
		}
	}

	if oldestKey != "" {
		delete(c.entries, oldestKey)
		c.metrics.RecordCacheEviction(context.Background(), 1, "capacity")
	}
}
