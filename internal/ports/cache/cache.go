// Package cache defines the caching interface used by the usecases.
package cache

import (
	"context"
	"time"
)

// Cache is a string key/value store with per-entry TTL. Get returns an
// empty string for a missing key.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
