package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/custodia-labs/noteflow/internal/adapters/driven/cache/memory"
	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/mocks"
)

type countingLimiter struct {
	waits atomic.Int32
	err   error
}

func (l *countingLimiter) Wait(context.Context) error {
	l.waits.Add(1)
	return l.err
}

func TestAIAccessService_IdenticalRequestsCallOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockCompletionClient(ctrl)
	limiter := &countingLimiter{}
	opts := domain.RequestOptions{Temperature: 0.2, MaxTokens: 64}

	client.EXPECT().
		Complete(gomock.Any(), "summarise", opts).
		Return(domain.AIResponse{Text: "short", Confidence: 0.7}, nil).
		Times(1)

	svc := NewAIAccessService(client, memory.NewLRU(0), limiter)
	ctx := context.Background()

	first := svc.ProcessRequest(ctx, "summarise", opts)
	second := svc.ProcessRequest(ctx, "summarise", opts)

	assert.Equal(t, domain.SourceFresh, first.Source)
	assert.Equal(t, domain.SourceCached, second.Source)
	assert.Equal(t, "short", second.Text)
	assert.InDelta(t, 0.7, second.Confidence, 1e-9)
	assert.Equal(t, int32(1), limiter.waits.Load(), "cache hits must not wait for a token")
}

func TestAIAccessService_DifferentOptionsMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockCompletionClient(ctrl)

	client.EXPECT().
		Complete(gomock.Any(), "p", gomock.Any()).
		Return(domain.AIResponse{Text: "ok"}, nil).
		Times(2)

	svc := NewAIAccessService(client, memory.NewLRU(0), nil)
	ctx := context.Background()

	svc.ProcessRequest(ctx, "p", domain.RequestOptions{Model: "a"})
	svc.ProcessRequest(ctx, "p", domain.RequestOptions{Model: "b"})
}

func TestAIAccessService_FailureFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockCompletionClient(ctrl)
	cache := memory.NewLRU(0)

	client.EXPECT().
		Complete(gomock.Any(), "describe", gomock.Any()).
		Return(domain.AIResponse{}, errors.New("connection refused")).
		Times(2)

	svc := NewAIAccessService(client, cache, nil)
	ctx := context.Background()

	resp := svc.ProcessRequest(ctx, "describe", domain.RequestOptions{})

	assert.True(t, resp.IsFallback())
	assert.InDelta(t, 0.1, resp.Confidence, 1e-9)
	assert.Equal(t, domain.FallbackText, resp.Text)
	assert.Equal(t, true, resp.Metadata[domain.MetaFallback])
	assert.Equal(t, "describe", resp.Metadata[domain.MetaOriginalPrompt])

	// Fallbacks are not cached, so the next call retries the client.
	assert.Equal(t, 0, cache.Len())
	resp = svc.ProcessRequest(ctx, "describe", domain.RequestOptions{})
	assert.True(t, resp.IsFallback())
}

func TestAIAccessService_KeepsClientConfidence(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockCompletionClient(ctrl)

	client.EXPECT().
		Complete(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.AIResponse{Text: "unsure", Confidence: 0}, nil)

	svc := NewAIAccessService(client, nil, nil)
	resp := svc.ProcessRequest(context.Background(), "p", domain.RequestOptions{})

	assert.Zero(t, resp.Confidence)
	assert.Equal(t, domain.SourceFresh, resp.Source)
	assert.NotNil(t, resp.Metadata)
}

func TestAIAccessService_LimiterErrorFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockCompletionClient(ctrl)
	limiter := &countingLimiter{err: context.Canceled}

	svc := NewAIAccessService(client, nil, limiter)
	resp := svc.ProcessRequest(context.Background(), "p", domain.RequestOptions{})

	assert.True(t, resp.IsFallback())
}

func TestAIAccessService_NilClientFallsBack(t *testing.T) {
	svc := NewAIAccessService(nil, nil, nil)
	resp := svc.ProcessRequest(context.Background(), "p", domain.RequestOptions{})

	assert.Equal(t, domain.SourceFallback, resp.Source)
}

func TestAIAccessService_CacheErrorTreatedAsMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockCompletionClient(ctrl)
	cache := mocks.NewMockResponseCache(ctrl)

	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(domain.AIResponse{}, false, errors.New("disk"))
	cache.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk"))
	client.EXPECT().Complete(gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.AIResponse{Text: "ok"}, nil)

	svc := NewAIAccessService(client, cache, nil)
	resp := svc.ProcessRequest(context.Background(), "p", domain.RequestOptions{})

	assert.Equal(t, domain.SourceFresh, resp.Source)
	assert.Equal(t, "ok", resp.Text)
}

func TestCacheKey(t *testing.T) {
	opts := domain.RequestOptions{Temperature: 0.5, MaxTokens: 10, Model: "m"}

	require.Equal(t, CacheKey("p", opts), CacheKey("p", opts))
	assert.NotEqual(t, CacheKey("p", opts), CacheKey("q", opts))
	assert.NotEqual(t, CacheKey("p", opts), CacheKey("p", domain.RequestOptions{Model: "m"}))
	assert.Len(t, CacheKey("p", opts), 64)
}
