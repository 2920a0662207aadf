package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gatehouse-project/gatehouse/pkg/cache/memorycache"
)

func TestCollector_RecordCheck(t *testing.T) {
	c := NewCollector()

	c.RecordCheck("View", true)
	c.RecordCheck("View", true)
	c.RecordCheck("View", false)
	c.RecordCheck("Edit", false)
	c.RecordError("Edit")

	m := c.GetCheckMetrics()
	if m.CheckCounts["View"] != 3 {
		t.Errorf("CheckCounts[View] = %d, want 3", m.CheckCounts["View"])
	}
	if m.DenialCounts["View"] != 1 {
		t.Errorf("DenialCounts[View] = %d, want 1", m.DenialCounts["View"])
	}
	if m.CheckCounts["Edit"] != 1 {
		t.Errorf("CheckCounts[Edit] = %d, want 1", m.CheckCounts["Edit"])
	}
	if m.ErrorCounts["Edit"] != 1 {
		t.Errorf("ErrorCounts[Edit] = %d, want 1", m.ErrorCounts["Edit"])
	}
}

func TestCollector_RecordDuration(t *testing.T) {
	c := NewCollector()

	c.RecordDuration("View", 0.25)
	c.RecordDuration("View", 0.25)

	m := c.GetCheckMetrics()
	if m.TotalDurationSeconds["View"] != 0.5 {
		t.Errorf("TotalDurationSeconds[View] = %v, want 0.5", m.TotalDurationSeconds["View"])
	}
}

func TestCollector_ConcurrentRecording(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.RecordCheck("View", true)
				c.RecordDuration("View", 0.001)
			}
		}()
	}
	wg.Wait()

	m := c.GetCheckMetrics()
	if m.CheckCounts["View"] != 1000 {
		t.Errorf("CheckCounts[View] = %d, want 1000", m.CheckCounts["View"])
	}
}

func TestCollector_GetCacheMetrics(t *testing.T) {
	c := NewCollector()

	// Without a cache every metric is zero.
	if m := c.GetCacheMetrics(); m.Hits != 0 || m.KeysCurrent != 0 {
		t.Errorf("GetCacheMetrics() without cache = %+v, want zeros", m)
	}

	mc := memorycache.New(&memorycache.Config{})
	c.SetCache(mc)

	ctx := context.Background()
	mc.Set(ctx, "k1", true, time.Minute)
	mc.Get(ctx, "k1")
	mc.Get(ctx, "missing")

	m := c.GetCacheMetrics()
	if m.Hits != 1 {
		t.Errorf("Hits = %d, want 1", m.Hits)
	}
	if m.Misses != 1 {
		t.Errorf("Misses = %d, want 1", m.Misses)
	}
	if m.HitRate != 0.5 {
		t.Errorf("HitRate = %v, want 0.5", m.HitRate)
	}
	if m.KeysCurrent != 1 {
		t.Errorf("KeysCurrent = %d, want 1", m.KeysCurrent)
	}
}
