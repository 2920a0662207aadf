// Package memorycache is an in-process LRU decision cache with TTL.
package memorycache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/gatehouse-project/gatehouse/pkg/cache"
)

// entry is one cached decision.
type entry struct {
	key       string
	decision  bool
	expiresAt time.Time
}

// Config holds configuration for the memory cache.
type Config struct {
	// MaxEntries bounds the number of cached decisions; least recently
	// used entries are evicted past it. Zero means a modest default.
	MaxEntries int

	// DefaultTTL applies when Set is called with a zero TTL.
	DefaultTTL time.Duration
}

const defaultMaxEntries = 10000

// Cache implements cache.Cache with an LRU list guarded by a mutex.
// Decisions are a single bool, so there is no size accounting beyond the
// entry count.
type Cache struct {
	mu sync.Mutex

	items      map[string]*list.Element
	evictList  *list.List // front = most recent
	maxEntries int
	defaultTTL time.Duration

	metrics cache.Metrics
}

// New creates a memory cache.
func New(config *Config) *Cache {
	maxEntries := config.MaxEntries
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &Cache{
		items:      make(map[string]*list.Element),
		evictList:  list.New(),
		maxEntries: maxEntries,
		defaultTTL: config.DefaultTTL,
	}
}

// Get implements cache.Cache.
func (c *Cache) Get(ctx context.Context, key string) (bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.items[key]
	if !exists {
		c.metrics.Misses++
		return false, false
	}
	ent := elem.Value.(*entry)
	if time.Now().After(ent.expiresAt) {
		c.removeElement(elem)
		c.metrics.Misses++
		return false, false
	}
	c.evictList.MoveToFront(elem)
	c.metrics.Hits++
	return ent.decision, true
}

// Set implements cache.Cache.
func (c *Cache) Set(ctx context.Context, key string, decision bool, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	expiresAt := time.Now().Add(ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.items[key]; exists {
		ent := elem.Value.(*entry)
		ent.decision = decision
		ent.expiresAt = expiresAt
		c.evictList.MoveToFront(elem)
		return nil
	}

	elem := c.evictList.PushFront(&entry{key: key, decision: decision, expiresAt: expiresAt})
	c.items[key] = elem
	c.metrics.KeysAdded++

	for len(c.items) > c.maxEntries {
		oldest := c.evictList.Back()
		if oldest == nil {
			break
		}
		c.removeElement(oldest)
		c.metrics.KeysEvicted++
	}
	return nil
}

// Delete implements cache.Cache.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, exists := c.items[key]; exists {
		c.removeElement(elem)
	}
	return nil
}

// Clear implements cache.Cache.
func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.evictList.Init()
	return nil
}

// Metrics implements cache.Cache.
func (c *Cache) Metrics() *cache.Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := c.metrics
	return &snapshot
}

// Len returns the current number of cached decisions.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

// removeElement removes an entry; the caller holds the lock.
func (c *Cache) removeElement(elem *list.Element) {
	c.evictList.Remove(elem)
	ent := elem.Value.(*entry)
	delete(c.items, ent.key)
}
