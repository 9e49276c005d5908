// Package models provides the model backends for each content type.
//
// Every backend is either local or cloud. Local backends do the work they can
// do on-device (metadata extraction, CSV parsing) and return empty results for
// the rest. Cloud backends send their prompts through a driven.Completer, so
// they inherit its rate limiting, caching and fallback behaviour.
package models

import (
	"context"
	"fmt"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
	"github.com/custodia-labs/noteflow/internal/logger"
)

// Deps are the collaborators cloud backends need.
type Deps struct {
	// Completer serves cloud backends. Without it every backend is local.
	Completer driven.Completer
}

// Load builds the backend described by cfg.
func Load(_ context.Context, cfg domain.ModelConfig, deps Deps) (driven.Backend, error) {
	remote := remoteFor(cfg, deps)
	mode := "local"
	if remote != nil {
		mode = "cloud"
	}
	logger.Debug("Loading %s model %q for %s", mode, cfg.Name, cfg.ContentType)

	switch cfg.ContentType {
	case domain.ContentTypeText:
		return NewText(remote), nil
	case domain.ContentTypeImage:
		return NewImage(remote), nil
	case domain.ContentTypeVideo:
		return NewVideo(remote), nil
	case domain.ContentTypeAudio:
		return NewAudio(remote), nil
	case domain.ContentTypeTable:
		return NewTable(remote), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedContentType, cfg.ContentType)
	}
}

// NewLoader returns a driven.BackendLoader bound to deps.
func NewLoader(deps Deps) driven.BackendLoader {
	return driven.BackendLoaderFunc(func(ctx context.Context, cfg domain.ModelConfig) (driven.Backend, error) {
		return Load(ctx, cfg, deps)
	})
}

// remote is a completer bound to one model name.
type remote struct {
	completer driven.Completer
	model     string
}

func remoteFor(cfg domain.ModelConfig, deps Deps) *remote {
	if !cfg.Settings.IsCloud() || deps.Completer == nil {
		return nil
	}
	model := cfg.Settings.Model
	if model == "" {
		model = cfg.Name
	}
	return &remote{completer: deps.Completer, model: model}
}

// ask sends prompt and reports whether the answer is usable.
func (r *remote) ask(ctx context.Context, prompt string) (string, bool) {
	resp := r.completer.ProcessRequest(ctx, prompt, domain.RequestOptions{Model: r.model})
	if resp.IsFallback() {
		logger.Warn("Model %s unavailable, using local result", r.model)
		return "", false
	}
	return resp.Text, true
}
