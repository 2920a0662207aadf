// Package cache defines the decision-cache contract used by the caching
// checker wrapper. Values are authorization decisions, so the interface
// is typed to booleans rather than arbitrary payloads.
package cache

import (
	"context"
	"time"
)

// Cache stores boolean decisions under string keys with per-entry TTL.
type Cache interface {
	// Get retrieves a decision. The second return reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) (bool, bool)

	// Set stores a decision with the given TTL.
	Set(ctx context.Context, key string, decision bool, ttl time.Duration) error

	// Delete removes a single entry.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Metrics returns cache statistics.
	Metrics() *Metrics
}

// Metrics holds cache performance statistics.
type Metrics struct {
	Hits        uint64
	Misses      uint64
	KeysAdded   uint64
	KeysEvicted uint64
}

// HitRate returns the cache hit rate (0.0 to 1.0).
func (m *Metrics) HitRate() float64 {
	total := m.Hits + m.Misses
	if total == 0 {
		return 0.0
	}
	return float64(m.Hits) / float64(total)
}
