package listing

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheTTL = 5 * time.Minute

// Cache stores rendered list pages in Redis. A nil *Cache is valid and
// never hits.
type Cache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCache(client *redis.Client, logger *zap.Logger) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client, logger: logger}
}

func CacheKey(entity string, f Filter) string {
	data, _ := json.Marshal(f.Normalize())
	return fmt.Sprintf("%s:list:%x", entity, md5.Sum(data))
}

// Get decodes a cached page into dest and reports whether it was found.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("listing cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	return json.Unmarshal(val, dest) == nil
}

func (c *Cache) Set(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, cacheTTL).Err(); err != nil {
		c.logger.Warn("listing cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops every cached page for entity in the background.
func (c *Cache) Invalidate(entity string) {
	if c == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.invalidate(ctx, entity)
	}()
}

func (c *Cache) invalidate(ctx context.Context, entity string) {
	iter := c.client.Scan(ctx, 0, entity+":list:*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("listing cache scan failed", zap.String("entity", entity), zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("listing cache invalidation failed",
			zap.String("entity", entity),
			zap.Int("keys", len(keys)),
			zap.Error(err),
		)
	}
}
