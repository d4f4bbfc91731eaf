package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
)

// JSONCache keeps values of one Go type in a Cache as JSON documents.
// Concurrent misses on the same key share a single load.
type JSONCache[T any] struct {
	backend Cache
	ttl     time.Duration
	loads   singleflight.Group
}

// NewJSONCache wraps backend. Entries written through it live for ttl.
func NewJSONCache[T any](backend Cache, ttl time.Duration) *JSONCache[T] {
	return &JSONCache[T]{backend: backend, ttl: ttl}
}

// Get reports false for misses, backend errors and entries that no longer
// decode into T. Undecodable entries are evicted.
func (c *JSONCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	raw, err := c.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			slog.Debug("cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		slog.Warn("dropping undecodable cache entry", "key", key, "error", err)
		_ = c.backend.Delete(ctx, key)
		return nil, false
	}
	return v, true
}

// Set encodes v and stores it under key.
func (c *JSONCache[T]) Set(ctx context.Context, key string, v *T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.backend.Set(ctx, key, raw, c.ttl)
}

// Delete evicts key.
func (c *JSONCache[T]) Delete(ctx context.Context, key string) error {
	return c.backend.Delete(ctx, key)
}

// Load returns the cached value for key, calling load on a miss. Load
// errors are returned to every waiting caller and never cached. A value
// that cannot be stored is still returned.
func (c *JSONCache[T]) Load(ctx context.Context, key string, load func() (*T, error)) (*T, error) {
	if v, ok := c.Get(ctx, key); ok {
		return v, nil
	}

	res, err, _ := c.loads.Do(key, func() (any, error) {
		v, err := load()
		if err != nil {
			return nil, err
		}
		if err := c.Set(ctx, key, v); err != nil {
			slog.Debug("cache write failed", "key", key, "error", err)
		}
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*T), nil
}
