// internal/domain/catalog/cache.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores catalog API responses in Redis for a short TTL so repeated
// browsing does not hammer the external API. A nil *Cache is valid and
// behaves as an always-miss cache.
type Cache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

// NewCache creates a catalog response cache
func NewCache(redisClient *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

// Get loads a cached response into dest. Returns false on miss or any
// Redis/decode failure; cache trouble never surfaces to the caller.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.redisClient == nil {
		return false
	}

	data, err := c.redisClient.Get(ctx, c.cacheKey(key)).Result()
	if err != nil {
		return false
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false
	}

	return true
}

// Set stores a response under key. Failures are dropped silently; the
// fetch that produced the value already succeeded.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.redisClient == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	c.redisClient.Set(ctx, c.cacheKey(key), data, c.ttl)
}

func (c *Cache) cacheKey(key string) string {
	return fmt.Sprintf("catalog:%s", key)
}
