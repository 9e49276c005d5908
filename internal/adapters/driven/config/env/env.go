// Package env loads AI access settings from the process environment.
// A .env file in the working directory is read first when present;
// variables already set in the environment take precedence.
package env

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/custodia-labs/noteflow/internal/core/domain"
)

// AIConfig configures the AI access layer.
type AIConfig struct {
	// APIKey is sent as a bearer token. Empty disables authentication.
	APIKey string `envconfig:"AI_API_KEY"`

	// Endpoint is the completion endpoint, or the provider base URL when
	// Provider is not "endpoint". Empty means no cloud access.
	Endpoint string `envconfig:"AI_ENDPOINT" validate:"omitempty,url"`

	// Provider selects the wire format spoken to Endpoint.
	Provider string `envconfig:"AI_PROVIDER" default:"endpoint" validate:"oneof=endpoint ollama openai anthropic"`

	// Model is the provider model used when a request names none.
	Model string `envconfig:"AI_MODEL"`

	// RateLimit is the number of requests per second.
	RateLimit float64 `envconfig:"AI_RATE_LIMIT" default:"10" validate:"gt=0"`

	// MaxRetries is the number of retries on transport failure.
	MaxRetries int `envconfig:"AI_MAX_RETRIES" default:"3" validate:"gte=0"`

	// Timeout bounds a single completion request.
	Timeout time.Duration `envconfig:"AI_TIMEOUT" default:"60s" validate:"gt=0"`

	// CacheSize bounds the in-memory response cache. 0 is unbounded.
	CacheSize int `envconfig:"AI_CACHE_SIZE" default:"1000" validate:"gte=0"`

	// CacheDir selects the persistent response cache when set.
	CacheDir string `envconfig:"AI_CACHE_DIR"`

	// CacheTTL is the lifetime of persistent cache entries.
	CacheTTL time.Duration `envconfig:"AI_CACHE_TTL" default:"24h" validate:"gte=0"`
}

// HasEndpoint reports whether a cloud endpoint is configured.
func (c AIConfig) HasEndpoint() bool {
	return c.Endpoint != ""
}

var validate = validator.New()

// LoadAI reads AIConfig from the environment after loading dotenv files.
// Missing dotenv files are ignored.
func LoadAI(dotenvFiles ...string) (AIConfig, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return AIConfig{}, fmt.Errorf("%w: load .env: %v", domain.ErrInvalidConfig, err)
	}

	var cfg AIConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return AIConfig{}, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	if err := validate.Struct(cfg); err != nil {
		return AIConfig{}, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	return cfg, nil
}
