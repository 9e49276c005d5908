package mcp

import (
	"github.com/custodia-labs/noteflow/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Processor processes content and applies workflows.
	Processor driving.ContentProcessor

	// Workflows lists registered workflows.
	Workflows driving.WorkflowEngine

	// Categorizer suggests categories. Optional.
	Categorizer driving.Categorizer

	// Records searches indexed records. Optional.
	Records driving.RecordService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Processor == nil {
		return ErrMissingProcessor
	}
	if p.Workflows == nil {
		return ErrMissingWorkflows
	}
	return nil
}
