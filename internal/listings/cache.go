// internal/listings/cache.go
package listings

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const catalogCacheKey = "catalog:active"

// catalogCache keeps the active catalog in Redis so every student search
// does not hit Postgres. All failures are soft: a cache miss or a Redis
// outage just means reading from the database.
type catalogCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func newCatalogCache(client *redis.Client, ttl time.Duration) *catalogCache {
	return &catalogCache{redis: client, ttl: ttl}
}

func (c *catalogCache) get(ctx context.Context) ([]Listing, bool) {
	if c.redis == nil {
		return nil, false
	}

	data, err := c.redis.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		return nil, false
	}

	var items []Listing
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false
	}

	return items, true
}

func (c *catalogCache) set(ctx context.Context, items []Listing) {
	if c.redis == nil {
		return
	}

	data, err := json.Marshal(items)
	if err != nil {
		return
	}

	c.redis.Set(ctx, catalogCacheKey, data, c.ttl)
}

// invalidate drops the cached catalog after any listing write.
func (c *catalogCache) invalidate(ctx context.Context) {
	if c.redis == nil {
		return
	}
	c.redis.Del(ctx, catalogCacheKey)
}
