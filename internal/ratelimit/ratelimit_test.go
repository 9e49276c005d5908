package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/noteflow/internal/core/domain"
)

func TestNew_RejectsNonPositiveRate(t *testing.T) {
	for _, rate := range []float64{0, -1} {
		limiter, err := New(rate)

		require.Error(t, err)
		assert.Nil(t, limiter)
		assert.True(t, errors.Is(err, domain.ErrInvalidConfig))
	}
}

func TestNew_Defaults(t *testing.T) {
	limiter, err := New(4)
	require.NoError(t, err)

	assert.Equal(t, 4, limiter.Burst())
	assert.Equal(t, 250*time.Millisecond, limiter.Interval())
	assert.InDelta(t, 4.0, limiter.Tokens(), 0.01)
}

func TestNew_FractionalRateHasAtLeastOneToken(t *testing.T) {
	limiter, err := New(0.5)
	require.NoError(t, err)

	assert.Equal(t, 1, limiter.Burst())
	assert.Equal(t, 2*time.Second, limiter.Interval())
}

func TestWait_FullBucketThenOneInterval(t *testing.T) {
	const rate = 5
	limiter, err := New(rate)
	require.NoError(t, err)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < rate; i++ {
		require.NoError(t, limiter.Wait(ctx))
	}
	burstElapsed := time.Since(start)
	assert.Less(t, burstElapsed, 50*time.Millisecond, "first %d requests should not wait", rate)

	start = time.Now()
	require.NoError(t, limiter.Wait(ctx))
	waited := time.Since(start)

	// 1000/R ms for the (R+1)-th request, minus whatever refilled during the burst.
	assert.Greater(t, waited, 100*time.Millisecond)
	assert.Less(t, waited, 400*time.Millisecond)
}

func TestWait_ContextCancelled(t *testing.T) {
	limiter, err := New(1)
	require.NoError(t, err)

	require.NoError(t, limiter.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, limiter.Wait(ctx))
}

func TestAllow(t *testing.T) {
	limiter, err := New(2)
	require.NoError(t, err)

	assert.True(t, limiter.Allow())
	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow())
}
