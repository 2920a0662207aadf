package authorization

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gatehouse-project/gatehouse/internal/entities"
	"github.com/gatehouse-project/gatehouse/pkg/cache"
)

// CachedChecker memoizes decisions of an inner checker. The engine
// itself never caches: a decision is only as fresh as the object
// snapshots and directory data behind it, so the cache sits in front of
// the engine and callers choose the TTL that matches their data's
// staleness tolerance.
type CachedChecker struct {
	inner PermissionChecker
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedChecker wraps inner with decision memoization.
func NewCachedChecker(inner PermissionChecker, c cache.Cache, ttl time.Duration) *CachedChecker {
	return &CachedChecker{inner: inner, cache: c, ttl: ttl}
}

// cacheKey hashes the check coordinates to a short fixed-length key.
func cacheKey(permission string, obj entities.Securable, identity entities.Identity) string {
	keyData := fmt.Sprintf("%s:%s:%s", permission, obj.Key(), identity.CacheKey())
	hash := sha256.Sum256([]byte(keyData))
	return hex.EncodeToString(hash[:])
}

// CheckPermission implements PermissionChecker. Only boolean outcomes are
// cached; errors always re-evaluate.
func (c *CachedChecker) CheckPermission(ctx context.Context, permission string, obj entities.Securable, identity entities.Identity) (bool, error) {
	if err := validateCheck(permission, obj, identity); err != nil {
		return false, fmt.Errorf("invalid permission check: %w", err)
	}

	key := cacheKey(permission, obj, identity)
	if cached, found := c.cache.Get(ctx, key); found {
		return cached, nil
	}

	allowed, err := c.inner.CheckPermission(ctx, permission, obj, identity)
	if err != nil {
		return false, err
	}

	_ = c.cache.Set(ctx, key, allowed, c.ttl)
	return allowed, nil
}
