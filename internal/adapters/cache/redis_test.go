package cache_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notedeck/internal/adapters/cache"
	"notedeck/internal/config"
	portscache "notedeck/internal/ports/cache"
	"notedeck/pkg/logger"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, portscache.Cache) {
	t.Helper()

	server := miniredis.RunT(t)
	port, err := strconv.Atoi(server.Port())
	require.NoError(t, err)

	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	ctx := logger.NewContext(context.Background(), testLogger)

	c, err := cache.NewRedisCache(ctx, &config.RedisConfig{
		Host:           server.Host(),
		Port:           port,
		PoolSize:       2,
		ConnectTimeout: 1,
		DefaultTTL:     60,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return server, c
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()

	t.Run("set then get round trips", func(t *testing.T) {
		_, c := newTestCache(t)

		require.NoError(t, c.Set(ctx, "key", "value", time.Minute))

		got, err := c.Get(ctx, "key")
		require.NoError(t, err)
		assert.Equal(t, "value", got)
	})

	t.Run("miss returns an empty string without error", func(t *testing.T) {
		_, c := newTestCache(t)

		got, err := c.Get(ctx, "absent")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("zero ttl falls back to the configured default", func(t *testing.T) {
		server, c := newTestCache(t)

		require.NoError(t, c.Set(ctx, "key", "value", 0))
		assert.Equal(t, 60*time.Second, server.TTL("key"))
	})

	t.Run("entries expire with their ttl", func(t *testing.T) {
		server, c := newTestCache(t)

		require.NoError(t, c.Set(ctx, "key", "value", time.Second))
		server.FastForward(2 * time.Second)

		got, err := c.Get(ctx, "key")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("delete removes the entry and tolerates missing keys", func(t *testing.T) {
		_, c := newTestCache(t)

		require.NoError(t, c.Set(ctx, "key", "value", time.Minute))
		require.NoError(t, c.Delete(ctx, "key"))
		require.NoError(t, c.Delete(ctx, "key"))

		got, err := c.Get(ctx, "key")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
