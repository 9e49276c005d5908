package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
	"github.com/custodia-labs/noteflow/internal/logger"
	"github.com/custodia-labs/noteflow/internal/metrics"
)

// Ensure AIAccessService implements the interface.
var _ driven.Completer = (*AIAccessService)(nil)

// Limiter admits outbound requests. *ratelimit.RateLimiter satisfies it.
type Limiter interface {
	Wait(ctx context.Context) error
}

// AIAccessService fronts every external model call with a response cache,
// a rate limiter and a fallback path. It never returns an error.
type AIAccessService struct {
	client  driven.CompletionClient
	cache   driven.ResponseCache
	limiter Limiter
}

// NewAIAccessService creates an AI access service.
// cache and limiter are optional; a nil client makes every miss fall back.
func NewAIAccessService(client driven.CompletionClient, cache driven.ResponseCache, limiter Limiter) *AIAccessService {
	return &AIAccessService{
		client:  client,
		cache:   cache,
		limiter: limiter,
	}
}

// ProcessRequest answers prompt from cache, or waits for a rate limit token
// and calls the completion client. Failures yield a fallback response which
// is not cached.
func (s *AIAccessService) ProcessRequest(ctx context.Context, prompt string, opts domain.RequestOptions) domain.AIResponse {
	key := CacheKey(prompt, opts)

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			logger.Warn("AI cache lookup failed: %v", err)
		}
		if ok {
			cached.Metadata = cloneMap(cached.Metadata)
			cached.Source = domain.SourceCached
			metrics.RecordAIRequest(string(domain.SourceCached))
			return cached
		}
	}

	resp, err := s.call(ctx, prompt, opts)
	if err != nil {
		logger.Warn("AI request failed, using fallback: %v", err)
		metrics.RecordAIRequest(string(domain.SourceFallback))
		return domain.NewFallbackResponse(prompt)
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, key, resp); err != nil {
			logger.Warn("AI cache store failed: %v", err)
		}
	}

	metrics.RecordAIRequest(string(domain.SourceFresh))
	resp.Metadata = cloneMap(resp.Metadata)
	return resp
}

func (s *AIAccessService) call(ctx context.Context, prompt string, opts domain.RequestOptions) (domain.AIResponse, error) {
	if s.client == nil {
		return domain.AIResponse{}, domain.ErrInvalidConfig
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return domain.AIResponse{}, err
		}
	}

	resp, err := s.client.Complete(ctx, prompt, opts)
	if err != nil {
		return domain.AIResponse{}, err
	}

	if resp.Metadata == nil {
		resp.Metadata = map[string]any{}
	}
	resp.Source = domain.SourceFresh
	return resp, nil
}

// CacheKey derives the response cache key for a prompt and its options.
// Identical inputs always produce the same key.
func CacheKey(prompt string, opts domain.RequestOptions) string {
	payload, _ := json.Marshal(struct {
		Prompt  string                `json:"prompt"`
		Options domain.RequestOptions `json:"options"`
	}{prompt, opts})
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
