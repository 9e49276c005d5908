// Package ai builds the completion client behind the AI access service.
package ai

import (
	"fmt"
	"time"

	"github.com/custodia-labs/noteflow/internal/adapters/driven/llm/anthropic"
	"github.com/custodia-labs/noteflow/internal/adapters/driven/llm/endpoint"
	"github.com/custodia-labs/noteflow/internal/adapters/driven/llm/ollama"
	"github.com/custodia-labs/noteflow/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
)

// Supported providers.
const (
	ProviderEndpoint  = "endpoint"
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config selects and configures a completion client.
type Config struct {
	Provider string
	Endpoint string
	APIKey   string
	Model    string

	// MaxRetries applies to the generic endpoint only. Negative disables retries.
	MaxRetries int
	Timeout    time.Duration
}

// NewCompletionClient creates the client for cfg.Provider. An empty
// provider means the generic JSON endpoint.
func NewCompletionClient(cfg Config) (driven.CompletionClient, error) {
	switch cfg.Provider {
	case "", ProviderEndpoint:
		return endpoint.New(endpoint.Config{
			Endpoint:   cfg.Endpoint,
			APIKey:     cfg.APIKey,
			MaxRetries: cfg.MaxRetries,
			Timeout:    cfg.Timeout,
		})

	case ProviderOllama:
		return ollama.New(ollama.Config{
			BaseURL: cfg.Endpoint,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}), nil

	case ProviderOpenAI:
		return openai.New(openai.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.Endpoint,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})

	case ProviderAnthropic:
		return anthropic.New(anthropic.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.Endpoint,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})

	default:
		return nil, fmt.Errorf("%w: unsupported AI provider: %s", domain.ErrInvalidConfig, cfg.Provider)
	}
}
