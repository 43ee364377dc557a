package source

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/donaldgifford/pricewatch/internal/metrics"
	domain "github.com/donaldgifford/pricewatch/pkg/types"
)

// RegionCache memoizes region context for the lifetime of one cycle.
// Concurrent lookups of the same region share a single outbound call, and
// failures are not cached so a later unit may retry. Build a new cache per
// cycle; entries never expire within it.
type RegionCache struct {
	resolver RegionResolver

	mu      sync.RWMutex
	entries map[string]domain.RegionContext
	group   singleflight.Group
}

// NewRegionCache wraps resolver with a cycle-scoped cache.
func NewRegionCache(resolver RegionResolver) *RegionCache {
	return &RegionCache{
		resolver: resolver,
		entries:  make(map[string]domain.RegionContext),
	}
}

// Resolve returns the cached context for region, resolving it on first use.
func (c *RegionCache) Resolve(ctx context.Context, region string) (domain.RegionContext, error) {
	c.mu.RLock()
	rc, ok := c.entries[region]
	c.mu.RUnlock()
	if ok {
		metrics.RegionCacheHitsTotal.Inc()
		return rc, nil
	}

	v, err, _ := c.group.Do(region, func() (any, error) {
		c.mu.RLock()
		rc, ok := c.entries[region]
		c.mu.RUnlock()
		if ok {
			return rc, nil
		}

		metrics.RegionCacheMissesTotal.Inc()
		rc, err := c.resolver.Resolve(ctx, region)
		if err != nil {
			return domain.RegionContext{}, err
		}
		c.mu.Lock()
		c.entries[region] = rc
		c.mu.Unlock()
		return rc, nil
	})
	if err != nil {
		return domain.RegionContext{}, err
	}
	return v.(domain.RegionContext), nil
}

// Len returns the number of cached regions.
func (c *RegionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
