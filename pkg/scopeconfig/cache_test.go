package scopeconfig_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/productattach/pkg/scopeconfig"
)

// countingSource counts lookups reaching the wrapped source.
type countingSource struct {
	next  scopeconfig.Source
	calls atomic.Int32
}

func (c *countingSource) Lookup(ctx context.Context, path string, scope scopeconfig.Scope, scopeID int) (string, error) {
	c.calls.Add(1)
	return c.next.Lookup(ctx, path, scope, scopeID)
}

type failingSource struct{}

func (failingSource) Lookup(context.Context, string, scopeconfig.Scope, int) (string, error) {
	return "", errors.New("database is down")
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("caches found values", func(t *testing.T) {
		t.Parallel()
		mr, rdb := newRedis(t)
		src := &countingSource{next: scopeconfig.NewStatic(map[string]string{itemsPerPage: "20"})}
		c := scopeconfig.NewRedisCache(src, rdb, time.Minute)

		for range 3 {
			v, err := c.Lookup(ctx, itemsPerPage, scopeconfig.ScopeDefault, 0)
			require.NoError(t, err)
			assert.Equal(t, "20", v)
		}
		assert.Equal(t, int32(1), src.calls.Load())

		cached, err := mr.Get("scopeconfig:default/0/" + itemsPerPage)
		require.NoError(t, err)
		assert.Equal(t, "20", cached)
		assert.Equal(t, time.Minute, mr.TTL("scopeconfig:default/0/"+itemsPerPage))
	})

	t.Run("expires", func(t *testing.T) {
		t.Parallel()
		mr, rdb := newRedis(t)
		src := &countingSource{next: scopeconfig.NewStatic(map[string]string{itemsPerPage: "20"})}
		c := scopeconfig.NewRedisCache(src, rdb, time.Minute)

		_, err := c.Lookup(ctx, itemsPerPage, scopeconfig.ScopeDefault, 0)
		require.NoError(t, err)
		mr.FastForward(2 * time.Minute)
		_, err = c.Lookup(ctx, itemsPerPage, scopeconfig.ScopeDefault, 0)
		require.NoError(t, err)

		assert.Equal(t, int32(2), src.calls.Load())
	})

	t.Run("misses are not cached", func(t *testing.T) {
		t.Parallel()
		mr, rdb := newRedis(t)
		c := scopeconfig.NewRedisCache(&scopeconfig.Static{}, rdb, time.Minute)

		_, err := c.Lookup(ctx, itemsPerPage, scopeconfig.ScopeStores, 1)
		assert.ErrorIs(t, err, scopeconfig.ErrNotFound)
		assert.Empty(t, mr.Keys())
	})

	t.Run("invalidate", func(t *testing.T) {
		t.Parallel()
		mr, rdb := newRedis(t)
		static := scopeconfig.NewStatic(map[string]string{itemsPerPage: "20"})
		c := scopeconfig.NewRedisCache(static, rdb, 0)

		_, err := c.Lookup(ctx, itemsPerPage, scopeconfig.ScopeDefault, 0)
		require.NoError(t, err)
		static.Set(itemsPerPage, scopeconfig.ScopeDefault, 0, "35")

		require.NoError(t, c.Invalidate(ctx, itemsPerPage, scopeconfig.ScopeDefault, 0))
		assert.Empty(t, mr.Keys())

		v, err := c.Lookup(ctx, itemsPerPage, scopeconfig.ScopeDefault, 0)
		require.NoError(t, err)
		assert.Equal(t, "35", v)
	})

	t.Run("redis unavailable falls through", func(t *testing.T) {
		t.Parallel()
		rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
		t.Cleanup(func() { _ = rdb.Close() })
		c := scopeconfig.NewRedisCache(scopeconfig.NewStatic(map[string]string{itemsPerPage: "20"}), rdb, time.Minute)

		v, err := c.Lookup(ctx, itemsPerPage, scopeconfig.ScopeDefault, 0)
		require.NoError(t, err)
		assert.Equal(t, "20", v)
	})

	t.Run("source errors are returned", func(t *testing.T) {
		t.Parallel()
		_, rdb := newRedis(t)
		c := scopeconfig.NewRedisCache(failingSource{}, rdb, time.Minute)

		_, err := c.Lookup(ctx, itemsPerPage, scopeconfig.ScopeDefault, 0)
		assert.Error(t, err)
	})
}

func TestMemoryCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("caches values and misses", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{next: scopeconfig.NewStatic(map[string]string{itemsPerPage: "20"})}
		c := scopeconfig.NewMemoryCache(src, 0, time.Minute)

		for range 3 {
			v, err := c.Lookup(ctx, itemsPerPage, scopeconfig.ScopeDefault, 0)
			require.NoError(t, err)
			assert.Equal(t, "20", v)

			_, err = c.Lookup(ctx, itemsPerPage, scopeconfig.ScopeStores, 1)
			assert.ErrorIs(t, err, scopeconfig.ErrNotFound)
		}
		assert.Equal(t, int32(2), src.calls.Load())
	})

	t.Run("expires", func(t *testing.T) {
		t.Parallel()
		now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		src := &countingSource{next: scopeconfig.NewStatic(map[string]string{itemsPerPage: "20"})}
		c := scopeconfig.NewMemoryCache(src, 10, time.Minute)
		c.SetClock(func() time.Time { return now })

		_, _ = c.Lookup(ctx, itemsPerPage, scopeconfig.ScopeDefault, 0)
		now = now.Add(time.Minute)
		_, _ = c.Lookup(ctx, itemsPerPage, scopeconfig.ScopeDefault, 0)

		assert.Equal(t, int32(2), src.calls.Load())
	})

	t.Run("invalidate and clear", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{next: scopeconfig.NewStatic(map[string]string{itemsPerPage: "20"})}
		c := scopeconfig.NewMemoryCache(src, 10, 0)

		_, _ = c.Lookup(ctx, itemsPerPage, scopeconfig.ScopeDefault, 0)
		c.Invalidate(itemsPerPage, scopeconfig.ScopeDefault, 0)
		_, _ = c.Lookup(ctx, itemsPerPage, scopeconfig.ScopeDefault, 0)
		c.Clear()
		_, _ = c.Lookup(ctx, itemsPerPage, scopeconfig.ScopeDefault, 0)

		assert.Equal(t, int32(3), src.calls.Load())
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()
		c := scopeconfig.NewMemoryCache(failingSource{}, 10, time.Minute)

		_, err := c.Lookup(ctx, itemsPerPage, scopeconfig.ScopeDefault, 0)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, scopeconfig.ErrNotFound)
	})
}
