// Package cache provides the byte cache used for the public event listing,
// site content and per-admin dashboard snapshots.
package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrCacheMiss is returned by Get for absent or expired keys.
	ErrCacheMiss = errors.New("cache: miss")
	// ErrCacheClosed is returned by every operation after Close.
	ErrCacheClosed = errors.New("cache: closed")
)

// Cache is a byte store with per-entry expiry. Implementations are safe for
// concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key. A zero ttl means the backend default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeleteByPrefix drops a whole key family, e.g. every "dashboard:" snapshot.
	DeleteByPrefix(ctx context.Context, prefix string) error
	Close() error
}
