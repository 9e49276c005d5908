package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/noteflow/internal/core/domain"
)

func TestLRU_GetMiss(t *testing.T) {
	c := NewLRU(2)

	_, ok, err := c.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(1), c.Stats().Misses)
}

func TestLRU_PutGet(t *testing.T) {
	c := NewLRU(2)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "k", domain.AIResponse{Text: "hello", Confidence: 0.8}))

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hello", got.Text)
	assert.Equal(t, 1, c.Len())
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU(2)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "a", domain.AIResponse{Text: "a"}))
	require.NoError(t, c.Put(ctx, "b", domain.AIResponse{Text: "b"}))

	// Touch a so b becomes the oldest
	_, _, _ = c.Get(ctx, "a")
	require.NoError(t, c.Put(ctx, "c", domain.AIResponse{Text: "c"}))

	_, ok, _ := c.Get(ctx, "b")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, int64(1), c.Stats().Evictions)
}

func TestLRU_ZeroCapacityIsUnbounded(t *testing.T) {
	c := NewLRU(0)
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		require.NoError(t, c.Put(ctx, fmt.Sprintf("k%d", i), domain.AIResponse{}))
	}
	assert.Equal(t, 100, c.Len())
}

func TestLRU_PutReplaces(t *testing.T) {
	c := NewLRU(2)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "k", domain.AIResponse{Text: "old"}))
	require.NoError(t, c.Put(ctx, "k", domain.AIResponse{Text: "new"}))

	got, _, _ := c.Get(ctx, "k")
	assert.Equal(t, "new", got.Text)
	assert.Equal(t, 1, c.Len())
}

func TestStats_HitRate(t *testing.T) {
	assert.Zero(t, Stats{}.HitRate())
	assert.InDelta(t, 0.75, Stats{Hits: 3, Misses: 1}.HitRate(), 1e-9)
}
