package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	got[0] = 'x'
	again, _ := c.Get(ctx, "k")
	assert.Equal(t, []byte("v"), again, "returned slices are copies")

	_, err = c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", []byte("v"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, err := c.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrCacheMiss)

	c.removeExpired()
	_, stored := c.data.Load("short")
	assert.False(t, stored)
}

func TestMemoryCache_DeleteByPrefix(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	_ = c.Set(ctx, "dashboard:1", []byte("a"), 0)
	_ = c.Set(ctx, "dashboard:2", []byte("b"), 0)
	_ = c.Set(ctx, "events:approved", []byte("c"), 0)

	require.NoError(t, c.DeleteByPrefix(ctx, "dashboard:"))

	_, err := c.Get(ctx, "dashboard:1")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = c.Get(ctx, "dashboard:2")
	assert.ErrorIs(t, err, ErrCacheMiss)
	got, err := c.Get(ctx, "events:approved")
	require.NoError(t, err)
	assert.Equal(t, []byte("c"), got)
}

func TestMemoryCache_Closed(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Millisecond)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "double close is safe")

	_, err := c.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrCacheClosed)
	assert.ErrorIs(t, c.Set(context.Background(), "k", nil, 0), ErrCacheClosed)
}

func TestNew_FallsBackToMemory(t *testing.T) {
	c := New(Config{RedisURL: "not a url", DefaultTTL: time.Minute})
	defer func() { _ = c.Close() }()
	_, ok := c.(*MemoryCache)
	assert.True(t, ok)
}
