package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
)

// ContentProcessor turns raw content into ProcessedContent and applies workflows.
type ContentProcessor interface {
	// ProcessContent dispatches content to the backend for pctx.ContentType and,
	// when pctx.Workflow is set, runs the result through it.
	ProcessContent(ctx context.Context, content []byte, pctx domain.ProcessingContext) (domain.ProcessedContent, error)

	// ProcessDocument reads a text document and builds its chunks and graph.
	ProcessDocument(ctx context.Context, name string, r io.Reader) (domain.ProcessedDocument, error)

	// ApplyWorkflow runs content through a workflow definition.
	ApplyWorkflow(ctx context.Context, content domain.ProcessedContent, wf domain.WorkflowDefinition) (domain.ProcessedContent, error)

	// FormatByCategory applies the workflow registered for category.
	FormatByCategory(ctx context.Context, content domain.ProcessedContent, category string) (domain.ProcessedContent, error)

	// GetModel returns the backend for a content type, loading it if needed.
	GetModel(ctx context.Context, ct domain.ContentType) (driven.Backend, error)

	// SetModel replaces the backend for a content type.
	SetModel(ct domain.ContentType, backend driven.Backend) error
}

// ModelRegistry maps content types to model configurations and loaded backends.
type ModelRegistry interface {
	// GetModel returns the cached backend or loads it from the registered config.
	GetModel(ctx context.Context, ct domain.ContentType) (driven.Backend, error)

	// SetModel overwrites the cached backend for ct.
	SetModel(ct domain.ContentType, backend driven.Backend) error

	// RegisterModelConfig sets the config for ct. A cached backend is kept.
	RegisterModelConfig(ct domain.ContentType, cfg domain.ModelConfig) error

	// Configs returns all registered configurations.
	Configs() []domain.ModelConfig
}
