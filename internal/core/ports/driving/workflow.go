package driving

import (
	"context"

	"github.com/custodia-labs/noteflow/internal/core/domain"
)

// WorkflowEngine executes workflows and owns the category -> workflow map.
type WorkflowEngine interface {
	// Execute applies the workflow's actions in order.
	Execute(ctx context.Context, content domain.ProcessedContent, wf domain.WorkflowDefinition) (domain.ProcessedContent, error)

	// Register stores a workflow under category, replacing any previous one.
	Register(category string, wf domain.WorkflowDefinition)

	// Get returns the workflow registered for category.
	Get(category string) (domain.WorkflowDefinition, error)

	// Categories returns all registered categories, sorted.
	Categories() []string

	// Match returns the categories whose triggers fire for content, sorted.
	Match(content domain.ProcessedContent) ([]string, error)
}
