package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const categoriesKey = "categorias:v1"

// CategoryCache keeps the serialized category listing in Redis. Categories are
// reference data seeded at startup, so there is no invalidation path; entries
// just expire.
type CategoryCache struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewCategoryCache(rdb *redis.Client) *CategoryCache {
	return &CategoryCache{RDB: rdb, TTL: 5 * time.Minute}
}

// Get returns the cached payload, or ok=false on miss, disabled cache, or a
// Redis error (the caller falls back to the database either way).
func (c *CategoryCache) Get(ctx context.Context) ([]byte, bool) {
	if c == nil || c.RDB == nil {
		return nil, false
	}
	payload, err := c.RDB.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

// Set stores the payload best-effort; a failed write only costs a cache miss.
func (c *CategoryCache) Set(ctx context.Context, payload []byte) {
	if c == nil || c.RDB == nil {
		return
	}
	c.RDB.Set(ctx, categoriesKey, payload, c.TTL)
}
