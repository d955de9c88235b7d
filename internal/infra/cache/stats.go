package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const statsKey = "taskmgr:stats:tasks"

// StatsCache keeps the computed task statistics in redis for a short
// TTL so the dashboard poll does not rescan the tasks table on every
// request. Every task mutation invalidates the entry.
type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStatsCache returns a new StatsCache.
func NewStatsCache(rdb *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{rdb: rdb, ttl: ttl}
}

// Get loads the cached stats into dest. Returns false on a miss.
func (c *StatsCache) Get(ctx context.Context, dest interface{}) (bool, error) {
	b, err := c.rdb.Get(ctx, statsKey).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores the stats with the configured TTL.
func (c *StatsCache) Set(ctx context.Context, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, statsKey, b, c.ttl).Err()
}

// Invalidate drops the cached entry.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, statsKey).Err()
}
