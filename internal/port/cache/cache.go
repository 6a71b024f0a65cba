// Package cache defines the byte-value cache port used by read paths.
package cache

import (
	"context"
	"time"
)

// Cache is a TTL'd byte cache. Implementations are safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
