// Package cache provides the read-through cache used for catalog lookups
// that change only on admin writes.
package cache

import (
	"context"
	"log/slog"
	"time"
)

// Keys for cached catalog data.
const (
	KeyCategories    = "catalog:categories"
	KeyBanners       = "catalog:banners"
	KeyPopular       = "catalog:popular"
	KeyLimited       = "catalog:limited"
	KeyTagsPrefix    = "catalog:tags:"
	KeyFiltersPrefix = "catalog:filters:"
)

// DefaultTTL bounds staleness when an invalidation is missed.
const DefaultTTL = 5 * time.Minute

// Cache stores JSON-encodable values by key.
type Cache interface {
	// Get decodes the cached value into dest. The bool is false on a miss.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}

// Remember returns the cached value for key, or calls load and caches its
// result. Cache failures are logged and fall through to load.
func Remember[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var cached T
	hit, err := c.Get(ctx, key, &cached)
	if err != nil {
		slog.Default().Warn("cache: get failed", "key", key, "error", err)
	}
	if hit {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		slog.Default().Warn("cache: set failed", "key", key, "error", err)
	}
	return value, nil
}

// Noop is a Cache that never stores anything.
type Noop struct{}

var _ Cache = Noop{}

func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error { return nil }
func (Noop) DeletePrefix(context.Context, string) error { return nil }
