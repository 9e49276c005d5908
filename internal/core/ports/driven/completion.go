package driven

import (
	"context"

	"github.com/custodia-labs/noteflow/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=completion.go -destination=../../../mocks/mock_completion.go -package=mocks

// CompletionClient performs the external model call behind the AI access service.
// Implementations return an error for transport failures and non-success statuses;
// the service turns those into fallback responses. A response whose model gave
// no confidence carries domain.DefaultConfidence.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string, opts domain.RequestOptions) (domain.AIResponse, error)
}

// ResponseCache stores AI responses by request key.
type ResponseCache interface {
	// Get returns the cached response for key.
	Get(ctx context.Context, key string) (domain.AIResponse, bool, error)

	// Put stores a response under key.
	Put(ctx context.Context, key string, resp domain.AIResponse) error

	// Len returns the number of cached entries.
	Len() int
}

// Completer is the AI access surface consumed by backends and category rules.
// It never fails; degraded results are signalled by AIResponse.Source.
type Completer interface {
	ProcessRequest(ctx context.Context, prompt string, opts domain.RequestOptions) domain.AIResponse
}
