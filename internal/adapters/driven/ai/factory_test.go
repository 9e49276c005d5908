package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/noteflow/internal/adapters/driven/llm/anthropic"
	"github.com/custodia-labs/noteflow/internal/adapters/driven/llm/endpoint"
	"github.com/custodia-labs/noteflow/internal/adapters/driven/llm/ollama"
	"github.com/custodia-labs/noteflow/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/noteflow/internal/core/domain"
)

func TestNewCompletionClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    any
		wantErr bool
	}{
		{
			name: "empty provider uses endpoint",
			cfg:  Config{Endpoint: "http://localhost:8080/complete"},
			want: &endpoint.Client{},
		},
		{
			name: "endpoint provider",
			cfg:  Config{Provider: ProviderEndpoint, Endpoint: "http://localhost:8080/complete"},
			want: &endpoint.Client{},
		},
		{
			name:    "endpoint requires url",
			cfg:     Config{Provider: ProviderEndpoint},
			wantErr: true,
		},
		{
			name: "ollama provider",
			cfg:  Config{Provider: ProviderOllama, Endpoint: "http://localhost:11434"},
			want: &ollama.Client{},
		},
		{
			name: "openai provider",
			cfg:  Config{Provider: ProviderOpenAI, APIKey: "test-key"},
			want: &openai.Client{},
		},
		{
			name:    "openai requires key",
			cfg:     Config{Provider: ProviderOpenAI},
			wantErr: true,
		},
		{
			name: "anthropic provider",
			cfg:  Config{Provider: ProviderAnthropic, APIKey: "test-key"},
			want: &anthropic.Client{},
		},
		{
			name:    "anthropic requires key",
			cfg:     Config{Provider: ProviderAnthropic},
			wantErr: true,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "mystery", Endpoint: "http://localhost"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewCompletionClient(tt.cfg)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, client)
		})
	}
}
