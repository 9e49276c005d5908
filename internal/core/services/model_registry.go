package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
	"github.com/custodia-labs/noteflow/internal/core/ports/driving"
	"github.com/custodia-labs/noteflow/internal/logger"
)

// Ensure ModelRegistry implements the interface.
var _ driving.ModelRegistry = (*ModelRegistry)(nil)

// ModelRegistry maps content types to model configurations and caches the
// backends loaded from them.
type ModelRegistry struct {
	loader driven.BackendLoader

	mu       sync.RWMutex
	configs  map[domain.ContentType]domain.ModelConfig
	backends map[domain.ContentType]driven.Backend
}

// NewModelRegistry creates an empty registry that builds backends with loader.
func NewModelRegistry(loader driven.BackendLoader) *ModelRegistry {
	return &ModelRegistry{
		loader:   loader,
		configs:  make(map[domain.ContentType]domain.ModelConfig),
		backends: make(map[domain.ContentType]driven.Backend),
	}
}

// GetModel returns the cached backend for ct. On first use it loads the
// backend from the registered config and caches it; there is no reload.
func (r *ModelRegistry) GetModel(ctx context.Context, ct domain.ContentType) (driven.Backend, error) {
	if !ct.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedContentType, ct)
	}

	r.mu.RLock()
	backend, cached := r.backends[ct]
	cfg, configured := r.configs[ct]
	r.mu.RUnlock()

	if cached {
		return backend, nil
	}
	if !configured {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoModelConfig, ct)
	}

	logger.Debug("Loading %s model %q", ct, cfg.Name)
	backend, err := r.load(ctx, ct, cfg)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another caller may have loaded or injected a backend meanwhile.
	if existing, ok := r.backends[ct]; ok {
		return existing, nil
	}
	r.backends[ct] = backend
	return backend, nil
}

// Resolve returns the backend to use for a request. A non-nil override is
// loaded fresh and not cached; otherwise this is GetModel.
func (r *ModelRegistry) Resolve(ctx context.Context, ct domain.ContentType, override *domain.ModelConfig) (driven.Backend, error) {
	if override == nil {
		return r.GetModel(ctx, ct)
	}
	if !ct.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedContentType, ct)
	}
	cfg := *override
	if cfg.ContentType == "" {
		cfg.ContentType = ct
	}
	return r.load(ctx, ct, cfg)
}

// SetModel overwrites the cached backend for ct.
func (r *ModelRegistry) SetModel(ct domain.ContentType, backend driven.Backend) error {
	if !ct.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedContentType, ct)
	}
	if !driven.Supports(ct, backend) {
		return fmt.Errorf("%w: %T for %s", domain.ErrBackendMismatch, backend, ct)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[ct] = backend
	return nil
}

// RegisterModelConfig sets the configuration for ct, replacing any previous
// one. An already cached backend stays in place until SetModel replaces it.
func (r *ModelRegistry) RegisterModelConfig(ct domain.ContentType, cfg domain.ModelConfig) error {
	if !ct.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedContentType, ct)
	}
	if cfg.Name == "" {
		return fmt.Errorf("%w: model name is required", domain.ErrInvalidConfig)
	}
	if cfg.ContentType == "" {
		cfg.ContentType = ct
	}
	if cfg.ContentType != ct {
		return fmt.Errorf("%w: config for %s registered under %s",
			domain.ErrInvalidConfig, cfg.ContentType, ct)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[ct] = cfg
	return nil
}

// Configs returns all registered configurations in content type order.
func (r *ModelRegistry) Configs() []domain.ModelConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ModelConfig, 0, len(r.configs))
	for _, ct := range domain.ContentTypes() {
		if cfg, ok := r.configs[ct]; ok {
			out = append(out, cfg)
		}
	}
	return out
}

func (r *ModelRegistry) load(ctx context.Context, ct domain.ContentType, cfg domain.ModelConfig) (driven.Backend, error) {
	if r.loader == nil {
		return nil, fmt.Errorf("%w: no backend loader", domain.ErrInvalidConfig)
	}
	backend, err := r.loader.Load(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("load %s model %q: %w", ct, cfg.Name, err)
	}
	if !driven.Supports(ct, backend) {
		return nil, fmt.Errorf("%w: %T for %s", domain.ErrBackendMismatch, backend, ct)
	}
	return backend, nil
}
