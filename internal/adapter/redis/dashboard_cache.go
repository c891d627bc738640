package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/Ayesha-te/ims-backend/internal/adapter/metrics"
	"github.com/Ayesha-te/ims-backend/internal/domain"
)

const dashboardCacheKey = "dashboard_cache:stats"

// DashboardCache caches the dashboard snapshot in two layers: a short-lived
// in-memory entry per instance and a shared Redis entry. Concurrent misses
// collapse into a single database load via singleflight.
type DashboardCache struct {
	rdb     goredis.Cmdable
	clock   clockwork.Clock
	ttl     time.Duration
	mem     *memoryCache
	group   singleflight.Group
	metrics *metrics.CacheMetrics
}

func NewDashboardCache(rdb goredis.Cmdable, clock clockwork.Clock, ttl time.Duration, cacheMetrics *metrics.CacheMetrics) *DashboardCache {
	return &DashboardCache{
		rdb:     rdb,
		clock:   clock,
		ttl:     ttl,
		mem:     newMemoryCache(clock, ttl),
		metrics: cacheMetrics,
	}
}

// StartEvictionTimer runs a periodic goroutine that evicts expired in-memory
// cache entries. Returns a stop function that should be deferred.
func (c *DashboardCache) StartEvictionTimer(interval time.Duration) func() {
	ticker := c.clock.NewTicker(interval)
	done := make(chan bool)

	go func() {
		for {
			select {
			case <-ticker.Chan():
				evicted := c.mem.evictExpired()
				if evicted > 0 {
					slog.Debug("Evicted expired dashboard cache entries", "count", evicted)
					if c.metrics != nil {
						c.metrics.Evictions.Add(float64(evicted))
					}
				}
				if c.metrics != nil {
					c.metrics.Entries.Set(float64(c.mem.size()))
				}

			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		close(done)
	}
}

// Get returns the cached dashboard snapshot, falling back through memory,
// Redis, and finally the loader.
func (c *DashboardCache) Get(ctx context.Context, load func(context.Context) (*domain.DashboardStats, error)) (*domain.DashboardStats, error) {
	// Layer 1: in-memory cache
	if stats, ok := c.mem.get(dashboardCacheKey); ok {
		if c.metrics != nil {
			c.metrics.Hits.WithLabelValues("memory").Inc()
		}
		return stats, nil
	}

	// Layer 2: Redis cache
	if stats, ok := c.getCached(ctx); ok {
		if c.metrics != nil {
			c.metrics.Hits.WithLabelValues("redis").Inc()
		}
		c.mem.set(dashboardCacheKey, stats)
		return stats, nil
	}

	// Layer 3: PostgreSQL, collapsed across concurrent callers
	if c.metrics != nil {
		c.metrics.Misses.Inc()
	}
	result, err, _ := c.group.Do(dashboardCacheKey, func() (any, error) {
		stats, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.mem.set(dashboardCacheKey, stats)
		c.writeCache(ctx, stats)
		return stats, nil
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard stats load failed: %w", err)
	}
	return result.(*domain.DashboardStats), nil
}

// Invalidate evicts the snapshot from both the in-memory cache and Redis.
// Called after every stock mutation so the dashboard never shows stale counts
// beyond the cache TTL.
func (c *DashboardCache) Invalidate(ctx context.Context) error {
	c.mem.invalidate(dashboardCacheKey)

	if err := c.rdb.Del(ctx, dashboardCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate dashboard cache: %w", err)
	}
	return nil
}

func (c *DashboardCache) writeCache(ctx context.Context, stats *domain.DashboardStats) {
	encoded, err := json.Marshal(stats)
	if err != nil {
		slog.Warn("Failed to marshal dashboard stats for Redis cache", "error", err)
		return
	}

	if err := c.rdb.Set(ctx, dashboardCacheKey, encoded, c.ttl).Err(); err != nil {
		slog.Warn("Failed to populate Redis dashboard cache", "error", err)
	}
}

func (c *DashboardCache) getCached(ctx context.Context) (*domain.DashboardStats, bool) {
	data, err := c.rdb.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			slog.Warn("Redis dashboard cache GET failed", "error", err)
		}
		return nil, false
	}

	var stats domain.DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		slog.Warn("Failed to unmarshal cached dashboard stats", "error", err)
		return nil, false
	}

	return &stats, true
}

// memoryCache is an in-memory L1 cache with TTL-based expiry.
type memoryCache struct {
	mu      sync.RWMutex
	clock   clockwork.Clock
	entries map[string]*memoryCacheEntry
	ttl     time.Duration
}

type memoryCacheEntry struct {
	stats     *domain.DashboardStats
	expiresAt time.Time
}

func newMemoryCache(clock clockwork.Clock, ttl time.Duration) *memoryCache {
	return &memoryCache{
		clock:   clock,
		entries: make(map[string]*memoryCacheEntry),
		ttl:     ttl,
	}
}

func (c *memoryCache) get(key string) (*domain.DashboardStats, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	if c.clock.Now().After(entry.expiresAt) {
		return nil, false
	}

	return entry.stats, true
}

func (c *memoryCache) set(key string, stats *domain.DashboardStats) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &memoryCacheEntry{
		stats:     stats,
		expiresAt: c.clock.Now().Add(c.ttl),
	}
}

func (c *memoryCache) invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *memoryCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *memoryCache) evictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	evicted := 0

	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}

	return evicted
}
