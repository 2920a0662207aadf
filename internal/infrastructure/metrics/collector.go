package metrics

import (
	"sync"
	"sync/atomic"

	"github.com/gatehouse-project/gatehouse/pkg/cache"
	"github.com/gatehouse-project/gatehouse/pkg/cache/memorycache"
)

// Collector collects and aggregates metrics for the application.
type Collector struct {
	// Check metrics
	checkCounts   sync.Map // map[string]*uint64 - permission -> count
	checkDenials  sync.Map // map[string]*uint64 - permission -> denial count
	checkErrors   sync.Map // map[string]*uint64 - permission -> error count
	checkDuration sync.Map // map[string]*durationValue - permission -> total duration in seconds

	// Cache reference (optional, for querying cache-specific metrics)
	cache cache.Cache
}

// durationValue holds duration with mutex for thread-safe updates.
type durationValue struct {
	mu           sync.Mutex
	totalSeconds float64
}

// CacheMetrics holds decision cache performance metrics.
type CacheMetrics struct {
	Hits        uint64
	Misses      uint64
	HitRate     float64
	KeysCurrent int64
	Evictions   uint64
}

// CheckMetrics holds permission check metrics.
type CheckMetrics struct {
	CheckCounts          map[string]uint64
	DenialCounts         map[string]uint64
	ErrorCounts          map[string]uint64
	TotalDurationSeconds map[string]float64
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{}
}

// SetCache sets the cache instance for collecting cache metrics.
func (c *Collector) SetCache(cache cache.Cache) {
	c.cache = cache
}

// RecordCheck records a permission check and its outcome.
func (c *Collector) RecordCheck(permission string, allowed bool) {
	counter := c.getOrCreateCounter(&c.checkCounts, permission)
	atomic.AddUint64(counter, 1)
	if !allowed {
		denials := c.getOrCreateCounter(&c.checkDenials, permission)
		atomic.AddUint64(denials, 1)
	}
}

// RecordError records a failed permission check.
func (c *Collector) RecordError(permission string) {
	counter := c.getOrCreateCounter(&c.checkErrors, permission)
	atomic.AddUint64(counter, 1)
}

// RecordDuration records the duration of a check in seconds.
func (c *Collector) RecordDuration(permission string, durationSeconds float64) {
	val, _ := c.checkDuration.LoadOrStore(permission, &durationValue{})
	dv := val.(*durationValue)

	dv.mu.Lock()
	dv.totalSeconds += durationSeconds
	dv.mu.Unlock()
}

// GetCacheMetrics returns current cache metrics.
func (c *Collector) GetCacheMetrics() *CacheMetrics {
	if c.cache == nil {
		return &CacheMetrics{}
	}

	metrics := c.cache.Metrics()
	if metrics == nil {
		return &CacheMetrics{}
	}

	result := &CacheMetrics{
		Hits:      metrics.Hits,
		Misses:    metrics.Misses,
		HitRate:   metrics.HitRate(),
		Evictions: metrics.KeysEvicted,
	}

	// Get current key count if available
	if memCache, ok := c.cache.(*memorycache.Cache); ok {
		result.KeysCurrent = int64(memCache.Len())
	}

	return result
}

// GetCheckMetrics returns current check metrics.
func (c *Collector) GetCheckMetrics() *CheckMetrics {
	result := &CheckMetrics{
		CheckCounts:          make(map[string]uint64),
		DenialCounts:         make(map[string]uint64),
		ErrorCounts:          make(map[string]uint64),
		TotalDurationSeconds: make(map[string]float64),
	}

	// Collect check counts
	c.checkCounts.Range(func(key, value interface{}) bool {
		permission := key.(string)
		count := atomic.LoadUint64(value.(*uint64))
		result.CheckCounts[permission] = count
		return true
	})

	// Collect denial counts
	c.checkDenials.Range(func(key, value interface{}) bool {
		permission := key.(string)
		count := atomic.LoadUint64(value.(*uint64))
		result.DenialCounts[permission] = count
		return true
	})

	// Collect error counts
	c.checkErrors.Range(func(key, value interface{}) bool {
		permission := key.(string)
		count := atomic.LoadUint64(value.(*uint64))
		result.ErrorCounts[permission] = count
		return true
	})

	// Collect duration totals
	c.checkDuration.Range(func(key, value interface{}) bool {
		permission := key.(string)
		dv := value.(*durationValue)
		dv.mu.Lock()
		result.TotalDurationSeconds[permission] = dv.totalSeconds
		dv.mu.Unlock()
		return true
	})

	return result
}

// getOrCreateCounter gets or creates a counter for the given key.
func (c *Collector) getOrCreateCounter(m *sync.Map, key string) *uint64 {
	val, _ := m.LoadOrStore(key, new(uint64))
	return val.(*uint64)
}
