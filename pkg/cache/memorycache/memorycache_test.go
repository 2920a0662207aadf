package memorycache

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	c := New(&Config{MaxEntries: 10, DefaultTTL: time.Minute})
	ctx := context.Background()

	if err := c.Set(ctx, "k1", true, 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Set(ctx, "k2", false, 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	decision, found := c.Get(ctx, "k1")
	if !found || !decision {
		t.Errorf("Get(k1) = (%v, %v), want (true, true)", decision, found)
	}
	decision, found = c.Get(ctx, "k2")
	if !found || decision {
		t.Errorf("Get(k2) = (%v, %v), want (false, true)", decision, found)
	}
	if _, found = c.Get(ctx, "missing"); found {
		t.Error("Get(missing) found = true, want false")
	}
}

func TestExpiry(t *testing.T) {
	c := New(&Config{MaxEntries: 10, DefaultTTL: time.Minute})
	ctx := context.Background()

	if err := c.Set(ctx, "k", true, time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, found := c.Get(ctx, "k"); found {
		t.Error("Get() found expired entry")
	}
}

func TestEviction(t *testing.T) {
	c := New(&Config{MaxEntries: 3, DefaultTTL: time.Minute})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		c.Set(ctx, fmt.Sprintf("k%d", i), true, 0)
	}
	// Touch k0 so k1 becomes the LRU victim.
	c.Get(ctx, "k0")
	c.Set(ctx, "k3", true, 0)

	if _, found := c.Get(ctx, "k1"); found {
		t.Error("k1 should have been evicted")
	}
	if _, found := c.Get(ctx, "k0"); !found {
		t.Error("k0 should have survived eviction")
	}
	if c.Metrics().KeysEvicted != 1 {
		t.Errorf("KeysEvicted = %d, want 1", c.Metrics().KeysEvicted)
	}
}

func TestDeleteAndClear(t *testing.T) {
	c := New(&Config{MaxEntries: 10, DefaultTTL: time.Minute})
	ctx := context.Background()

	c.Set(ctx, "k1", true, 0)
	c.Set(ctx, "k2", true, 0)

	if err := c.Delete(ctx, "k1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, found := c.Get(ctx, "k1"); found {
		t.Error("Get(k1) found deleted entry")
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, found := c.Get(ctx, "k2"); found {
		t.Error("Get(k2) found entry after Clear")
	}
}

func TestMetricsHitRate(t *testing.T) {
	c := New(&Config{MaxEntries: 10, DefaultTTL: time.Minute})
	ctx := context.Background()

	c.Set(ctx, "k", true, 0)
	c.Get(ctx, "k")
	c.Get(ctx, "k")
	c.Get(ctx, "missing")

	m := c.Metrics()
	if m.Hits != 2 || m.Misses != 1 {
		t.Errorf("metrics = %+v, want 2 hits, 1 miss", m)
	}
	if got := m.HitRate(); got < 0.66 || got > 0.67 {
		t.Errorf("HitRate() = %f, want ~0.667", got)
	}
}
