package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/noteflow/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for noteflow resources.
	uriScheme = "noteflow://"

	workflowsURI = uriScheme + "workflows"
)

// workflowResource is the published form of a registered workflow.
type workflowResource struct {
	Category   string              `json:"category"`
	Trigger    domain.Trigger      `json:"trigger"`
	Actions    []domain.ActionSpec `json:"actions"`
	Formatting []domain.FormatRule `json:"formatting,omitempty"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         workflowsURI,
		Name:        "workflows",
		Description: "Workflows registered per category",
		MIMEType:    "application/json",
	}, s.handleWorkflowsResource)
}

// handleWorkflowsResource returns every registered workflow.
func (s *Server) handleWorkflowsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := s.workflowsJSON()
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) workflowsJSON() ([]byte, error) {
	categories := s.ports.Workflows.Categories()
	out := make([]workflowResource, 0, len(categories))

	for _, category := range categories {
		wf, err := s.ports.Workflows.Get(category)
		if err != nil {
			return nil, fmt.Errorf("getting workflow %q: %w", category, err)
		}

		res := workflowResource{
			Category:   category,
			Trigger:    wf.Trigger,
			Actions:    make([]domain.ActionSpec, 0, len(wf.Actions)),
			Formatting: wf.Formatting,
		}
		for _, action := range wf.Actions {
			spec, err := domain.SpecFor(action)
			if err != nil {
				return nil, fmt.Errorf("workflow %q: %w", category, err)
			}
			res.Actions = append(res.Actions, spec)
		}
		out = append(out, res)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling workflows: %w", err)
	}
	return data, nil
}
