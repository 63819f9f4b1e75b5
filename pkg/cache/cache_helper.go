package cache

import (
	"context"
	"log"
	"time"
)

// Handle returns the cached value for key or computes, stores and returns
// it. A failing cache never fails the call.
func Handle[T any](ctx context.Context, c *Cache, key string, expiration time.Duration, fn func() (T, error)) (T, bool, error) {
	var out T
	if c == nil {
		out, err := fn()
		return out, false, err
	}
	if err := c.Get(ctx, key, &out); err == nil {
		return out, true, nil
	}
	out, err := fn()
	if err != nil {
		return out, false, err
	}
	if err := c.Set(ctx, key, out, expiration); err != nil {
		log.Printf("failed to cache %s: %v", key, err)
	}
	return out, false, nil
}
