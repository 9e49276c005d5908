package mcp

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/samber/lo"

	"github.com/custodia-labs/noteflow/internal/core/domain"
)

// defaultSearchLimit applies when the search tool is called without a limit.
const defaultSearchLimit = 10

// ContentInput is processed content supplied by the caller.
type ContentInput struct {
	Content     string   `json:"content" jsonschema:"the content text"`
	Title       string   `json:"title,omitempty" jsonschema:"content title"`
	Description string   `json:"description,omitempty" jsonschema:"short summary"`
	Tags        []string `json:"tags,omitempty" jsonschema:"existing tags"`
	Category    string   `json:"category,omitempty" jsonschema:"existing category"`
	ContentType string   `json:"contentType,omitempty" jsonschema:"text, image, video, audio or table (default text)"`
}

// ContentOutput is processed content returned to the caller.
type ContentOutput struct {
	Content     string              `json:"content"`
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
	Category    string              `json:"category,omitempty"`
	Location    string              `json:"location,omitempty"`
	ContentType string              `json:"contentType"`
	Created     string              `json:"created,omitempty"`
	Custom      map[string]any      `json:"customMetadata,omitempty"`
	Chunks      int                 `json:"chunks"`
	Edges       int                 `json:"edges"`
	Format      []domain.FormatRule `json:"format,omitempty"`
}

// WorkflowInput is an ad-hoc workflow definition.
type WorkflowInput struct {
	ContentTypes []string            `json:"contentTypes,omitempty" jsonschema:"content types the workflow applies to (empty = all)"`
	Conditions   []domain.Condition  `json:"conditions,omitempty" jsonschema:"conditions that must all hold"`
	Actions      []domain.ActionSpec `json:"actions" jsonschema:"actions to run in order: transform, format, categorize, tag or move"`
	Formatting   []domain.FormatRule `json:"formatting,omitempty" jsonschema:"presentation rules"`
}

// ProcessContentInput is the input schema for the process_content tool.
type ProcessContentInput struct {
	Content     string `json:"content" jsonschema:"raw content; base64 encoded for binary types"`
	ContentType string `json:"contentType" jsonschema:"text, image, video, audio or table"`
	Base64      bool   `json:"base64,omitempty" jsonschema:"content is base64 encoded"`
	Category    string `json:"category,omitempty" jsonschema:"apply the workflow registered for this category"`
}

// ProcessDocumentInput is the input schema for the process_document tool.
type ProcessDocumentInput struct {
	Name    string `json:"name" jsonschema:"document name, used as title fallback"`
	Content string `json:"content" jsonschema:"document text"`
}

// DocumentOutput is the output schema for the process_document tool.
type DocumentOutput struct {
	Title       string                 `json:"title"`
	Content     string                 `json:"content"`
	ContentType string                 `json:"contentType"`
	Custom      map[string]any         `json:"customMetadata,omitempty"`
	Chunks      []domain.SemanticChunk `json:"chunks"`
	Edges       []domain.Edge          `json:"edges"`
}

// ApplyWorkflowInput is the input schema for the apply_workflow tool.
type ApplyWorkflowInput struct {
	Content  ContentInput  `json:"content"`
	Workflow WorkflowInput `json:"workflow"`
}

// FormatByCategoryInput is the input schema for the format_by_category tool.
type FormatByCategoryInput struct {
	Content  ContentInput `json:"content"`
	Category string       `json:"category" jsonschema:"registered workflow category"`
}

// CategorizeInput is the input schema for the categorize tool.
type CategorizeInput struct {
	Text string `json:"text" jsonschema:"text to categorise"`
}

// CategorizeOutput is the output schema for the categorize tool.
type CategorizeOutput struct {
	Suggestions []domain.CategoryScore `json:"suggestions"`
}

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query       string `json:"query" jsonschema:"the search query"`
	Limit       int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	Category    string `json:"category,omitempty" jsonschema:"only records in this category"`
	Tag         string `json:"tag,omitempty" jsonschema:"only records with this tag"`
	ContentType string `json:"contentType,omitempty" jsonschema:"only records of this content type"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	URI      string   `json:"uri,omitempty"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Score    float64  `json:"score"`
	Content  string   `json:"content,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "process_content",
		Description: "Analyse raw content with the model for its type and return structured content",
	}, s.handleProcessContent)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "process_document",
		Description: "Chunk a text document and build its relationship graph",
	}, s.handleProcessDocument)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "apply_workflow",
		Description: "Run content through an ad-hoc workflow",
	}, s.handleApplyWorkflow)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "format_by_category",
		Description: "Run content through the workflow registered for a category",
	}, s.handleFormatByCategory)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "categorize",
		Description: "Suggest categories for text",
	}, s.handleCategorize)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search indexed records",
	}, s.handleSearch)
}

func (s *Server) handleProcessContent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProcessContentInput,
) (*mcp.CallToolResult, ContentOutput, error) {
	ct, err := domain.ParseContentType(input.ContentType)
	if err != nil {
		return nil, ContentOutput{}, err
	}

	data := []byte(input.Content)
	if input.Base64 {
		if data, err = base64.StdEncoding.DecodeString(input.Content); err != nil {
			return nil, ContentOutput{}, fmt.Errorf("%w: content is not base64: %v", domain.ErrInvalidInput, err)
		}
	}

	pctx := domain.ProcessingContext{ContentType: ct}
	if input.Category != "" {
		wf, err := s.ports.Workflows.Get(input.Category)
		if err != nil {
			return nil, ContentOutput{}, err
		}
		pctx.Workflow = &wf
	}

	out, err := s.ports.Processor.ProcessContent(ctx, data, pctx)
	if err != nil {
		return nil, ContentOutput{}, err
	}
	return nil, toContentOutput(out), nil
}

func (s *Server) handleProcessDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProcessDocumentInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	doc, err := s.ports.Processor.ProcessDocument(ctx, input.Name, strings.NewReader(input.Content))
	if err != nil {
		return nil, DocumentOutput{}, err
	}

	return nil, DocumentOutput{
		Title:       doc.Metadata.Title,
		Content:     doc.Content,
		ContentType: doc.Metadata.ContentType.String(),
		Custom:      doc.Metadata.Custom,
		Chunks:      doc.Chunks,
		Edges:       lo.Ternary(doc.Graph.Edges == nil, []domain.Edge{}, doc.Graph.Edges),
	}, nil
}

func (s *Server) handleApplyWorkflow(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ApplyWorkflowInput,
) (*mcp.CallToolResult, ContentOutput, error) {
	content, err := s.fromContentInput(input.Content)
	if err != nil {
		return nil, ContentOutput{}, err
	}
	wf, err := toWorkflow(input.Workflow)
	if err != nil {
		return nil, ContentOutput{}, err
	}

	out, err := s.ports.Processor.ApplyWorkflow(ctx, content, wf)
	if err != nil {
		return nil, ContentOutput{}, err
	}
	return nil, toContentOutput(out), nil
}

func (s *Server) handleFormatByCategory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FormatByCategoryInput,
) (*mcp.CallToolResult, ContentOutput, error) {
	content, err := s.fromContentInput(input.Content)
	if err != nil {
		return nil, ContentOutput{}, err
	}

	out, err := s.ports.Processor.FormatByCategory(ctx, content, input.Category)
	if err != nil {
		return nil, ContentOutput{}, err
	}
	return nil, toContentOutput(out), nil
}

func (s *Server) handleCategorize(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CategorizeInput,
) (*mcp.CallToolResult, CategorizeOutput, error) {
	if s.ports.Categorizer == nil {
		return nil, CategorizeOutput{}, fmt.Errorf("%w: categorize", ErrUnavailable)
	}

	scores, err := s.ports.Categorizer.Categorize(ctx, input.Text)
	if err != nil {
		return nil, CategorizeOutput{}, err
	}
	if scores == nil {
		scores = []domain.CategoryScore{}
	}
	return nil, CategorizeOutput{Suggestions: scores}, nil
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if s.ports.Records == nil {
		return nil, SearchOutput{}, fmt.Errorf("%w: search", ErrUnavailable)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	filter := domain.RecordFilter{Category: input.Category, Tag: input.Tag}
	if input.ContentType != "" {
		ct, err := domain.ParseContentType(input.ContentType)
		if err != nil {
			return nil, SearchOutput{}, err
		}
		filter.ContentType = ct
	}

	results, err := s.ports.Records.Search(ctx, input.Query, limit, filter)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			ID:       results[i].ID,
			Title:    results[i].Metadata.Title,
			URI:      results[i].URI,
			Category: results[i].Metadata.Category,
			Tags:     results[i].Metadata.Tags,
			Score:    results[i].Score,
			Content:  results[i].Content,
		}
	}

	return nil, output, nil
}

func (s *Server) fromContentInput(in ContentInput) (domain.ProcessedContent, error) {
	ct := domain.ContentTypeText
	if in.ContentType != "" {
		var err error
		if ct, err = domain.ParseContentType(in.ContentType); err != nil {
			return domain.ProcessedContent{}, err
		}
	}

	now := s.now()
	return domain.ProcessedContent{
		Content: in.Content,
		Metadata: domain.DocumentMetadata{
			Title:       in.Title,
			Description: in.Description,
			Tags:        in.Tags,
			Category:    in.Category,
			Created:     now,
			Modified:    now,
			ContentType: ct,
		},
	}, nil
}

func toWorkflow(in WorkflowInput) (domain.WorkflowDefinition, error) {
	var wf domain.WorkflowDefinition
	for _, raw := range in.ContentTypes {
		ct, err := domain.ParseContentType(raw)
		if err != nil {
			return domain.WorkflowDefinition{}, err
		}
		wf.Trigger.ContentTypes = append(wf.Trigger.ContentTypes, ct)
	}
	wf.Trigger.Conditions = in.Conditions
	wf.Formatting = in.Formatting

	for i, spec := range in.Actions {
		action, err := domain.ParseAction(spec)
		if err != nil {
			return domain.WorkflowDefinition{}, fmt.Errorf("action %d: %w", i, err)
		}
		wf.Actions = append(wf.Actions, action)
	}
	return wf, nil
}

func toContentOutput(c domain.ProcessedContent) ContentOutput {
	out := ContentOutput{
		Content:     c.Content,
		Title:       c.Metadata.Title,
		Description: c.Metadata.Description,
		Tags:        c.Metadata.Tags,
		Category:    c.Metadata.Category,
		Location:    c.Metadata.Location,
		ContentType: c.Metadata.ContentType.String(),
		Custom:      c.Metadata.Custom,
		Chunks:      len(c.Relationships.Nodes),
		Edges:       len(c.Relationships.Edges),
		Format:      c.Format,
	}
	if !c.Metadata.Created.IsZero() {
		out.Created = c.Metadata.Created.Format(time.RFC3339)
	}
	return out
}
