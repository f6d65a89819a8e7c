// Package cache provides the Redis implementation of the cache port.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"notedeck/internal/config"
	"notedeck/internal/ports/cache"
	"notedeck/pkg/logger"
)

// RedisCache implements cache.Cache over a Redis server.
type RedisCache struct {
	client     *redis.Client
	defaultTTL time.Duration
}

// NewRedisCache connects to Redis and verifies the connection with a
// ping before returning.
func NewRedisCache(ctx context.Context, cfg *config.RedisConfig) (cache.Cache, error) {
	log := logger.Log(ctx).With(zap.String("method", "NewRedisCache"))
	log.Info(ctx, "connecting to redis", zap.String("address", cfg.GetAddress()))

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.GetAddress(),
		Password:    cfg.Password,
		DB:          cfg.DB,
		PoolSize:    cfg.PoolSize,
		DialTimeout: cfg.GetConnectTimeout(),
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.GetConnectTimeout())
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Error(ctx, "error connecting to redis", zap.Error(err))
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}

	log.Info(ctx, "connected to redis")
	return &RedisCache{client: client, defaultTTL: cfg.GetDefaultTTL()}, nil
}

// Get returns the cached value, or an empty string on a miss.
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "RedisCache.Get"))

	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		log.Error(ctx, "error reading from cache", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("error reading from cache: %w", err)
	}
	return value, nil
}

// Set stores a value under the key. A non-positive ttl uses the
// configured default.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	log := logger.Log(ctx).With(zap.String("method", "RedisCache.Set"))

	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Error(ctx, "error writing to cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("error writing to cache: %w", err)
	}
	return nil
}

// Delete removes the key from the cache. Deleting a missing key is not
// an error.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	log := logger.Log(ctx).With(zap.String("method", "RedisCache.Delete"))

	if err := c.client.Del(ctx, key).Err(); err != nil {
		log.Error(ctx, "error deleting from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("error deleting from cache: %w", err)
	}
	return nil
}

// Close shuts the Redis client down.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
