package listing

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis, *observer.ObservedLogs) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	core, logs := observer.New(zap.WarnLevel)
	return NewCache(client, zap.New(core)), srv, logs
}

func TestCacheRoundTripAndTTL(t *testing.T) {
	c, srv, _ := newTestCache(t)
	key := CacheKey("land", Filter{Search: "river"})

	var page Page[string]
	assert.False(t, c.Get(t.Context(), key, &page), "empty cache misses")

	c.Set(t.Context(), key, Page[string]{Items: []string{"a", "b"}, Metadata: Metadata{Total: 2, Page: 1}})
	require.True(t, c.Get(t.Context(), key, &page))
	assert.Equal(t, []string{"a", "b"}, page.Items)
	assert.Equal(t, int64(2), page.Metadata.Total)
	assert.Equal(t, cacheTTL, srv.TTL(key))

	srv.FastForward(cacheTTL + 1)
	assert.False(t, c.Get(t.Context(), key, &page), "expired pages miss")
}

func TestCacheInvalidateDropsOnlyThatEntity(t *testing.T) {
	c, srv, logs := newTestCache(t)
	landA := CacheKey("land", Filter{Search: "river"})
	landB := CacheKey("land", Filter{Page: 2})
	animals := CacheKey("animals", Filter{})
	for _, key := range []string{landA, landB, animals} {
		c.Set(t.Context(), key, []int{1})
	}

	c.invalidate(t.Context(), "land")

	assert.False(t, srv.Exists(landA))
	assert.False(t, srv.Exists(landB))
	assert.True(t, srv.Exists(animals))
	assert.Zero(t, logs.Len())
}

func TestCacheInvalidateRunsInBackground(t *testing.T) {
	c, srv, _ := newTestCache(t)
	key := CacheKey("nurseries", Filter{})
	c.Set(t.Context(), key, []int{1})

	c.Invalidate("nurseries")

	assert.Eventually(t, func() bool { return !srv.Exists(key) }, time.Second, 10*time.Millisecond)
}

func TestCacheLogsRedisFailures(t *testing.T) {
	c, srv, logs := newTestCache(t)
	key := CacheKey("equipment", Filter{})
	srv.Close()

	var dest []int
	assert.False(t, c.Get(t.Context(), key, &dest))
	c.Set(t.Context(), key, []int{1})
	c.invalidate(t.Context(), "equipment")

	messages := []string{}
	for _, entry := range logs.All() {
		messages = append(messages, entry.Message)
	}
	assert.Equal(t, []string{
		"listing cache read failed",
		"listing cache write failed",
		"listing cache scan failed",
	}, messages)
}
