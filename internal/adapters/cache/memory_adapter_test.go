package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carecompass/backend/internal/domain/providers"
)

func TestMemoryAdapter(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	cache := NewMemoryAdapter()
	cache.now = func() time.Time { return now }

	_, err := cache.Get(ctx, "doctors")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "doctors", []byte(`[]`), 60))
	got, err := cache.Get(ctx, "doctors")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	ok, _ := cache.Exists(ctx, "doctors")
	assert.True(t, ok)

	now = now.Add(61 * time.Second)
	_, err = cache.Get(ctx, "doctors")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)
	ok, _ = cache.Exists(ctx, "doctors")
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "forever", []byte("x"), 0))
	require.NoError(t, cache.Delete(ctx, "forever"))
	_, err = cache.Get(ctx, "forever")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)
}

func TestMemoryAdapter_Sweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	cache := NewMemoryAdapter()
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(ctx, "short", []byte("a"), 10))
	require.NoError(t, cache.Set(ctx, "long", []byte("b"), 600))
	require.NoError(t, cache.Set(ctx, "forever", []byte("c"), 0))

	now = now.Add(time.Minute)
	assert.Equal(t, 1, cache.Sweep())

	ok, _ := cache.Exists(ctx, "long")
	assert.True(t, ok)
	ok, _ = cache.Exists(ctx, "forever")
	assert.True(t, ok)
}
