package app

import (
	"context"
	"fmt"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/logger"
	"github.com/custodia-labs/noteflow/internal/normalisers"
	"github.com/custodia-labs/noteflow/internal/pipeline"
)

// ProcessRequest describes one ingest run.
type ProcessRequest struct {
	// URI identifies the source, e.g. a file path.
	URI string

	// Data is the raw content.
	Data []byte

	// ContentType selects the backend.
	ContentType domain.ContentType

	// Workflow names a registered category to apply.
	Workflow string

	// Auto applies every workflow whose trigger fires.
	Auto bool

	// Index stores the result in the record store.
	Index bool
}

// ProcessResult is the outcome of Process.
type ProcessResult struct {
	Content  domain.ProcessedContent `json:"content"`
	Applied  []string                `json:"workflows,omitempty"`
	RecordID string                  `json:"recordId,omitempty"`
}

// Process runs content through the processor, then through a pipeline of the
// requested workflows and an optional index step. Each step's result is
// recorded in the app's context manager.
func (a *App) Process(ctx context.Context, req ProcessRequest) (ProcessResult, error) {
	data := req.Data
	var normalised *normalisers.Result
	if req.ContentType == domain.ContentTypeText && a.Normalisers != nil {
		res, ok, err := a.Normalisers.Normalise(data, req.URI)
		if err != nil {
			return ProcessResult{}, fmt.Errorf("normalise %s: %w", req.URI, err)
		}
		if ok {
			data, normalised = []byte(res.Content), &res
		}
	}

	content, err := a.Processor.ProcessContent(ctx, data, domain.ProcessingContext{ContentType: req.ContentType})
	if err != nil {
		return ProcessResult{}, err
	}
	if normalised != nil {
		applyNormalised(&content.Metadata, *normalised)
	}

	var result ProcessResult
	p := pipeline.New[domain.ProcessedContent](a.Context)

	categories, err := a.workflowsFor(content, req)
	if err != nil {
		return ProcessResult{}, err
	}
	for _, category := range categories {
		p.Add(func(ctx context.Context, c domain.ProcessedContent) (domain.ProcessedContent, error) {
			logger.Debug("Applying workflow %q to %s", category, req.URI)
			return a.Processor.FormatByCategory(ctx, c, category)
		})
	}
	result.Applied = categories

	if req.Index {
		p.Add(func(ctx context.Context, c domain.ProcessedContent) (domain.ProcessedContent, error) {
			id, err := a.Records.Index(ctx, req.URI, ContentDocument(c))
			if err != nil {
				return c, err
			}
			result.RecordID = id
			return c, nil
		})
	}

	out, err := p.Execute(ctx, content)
	if err != nil {
		return ProcessResult{}, fmt.Errorf("process %s: %w", req.URI, err)
	}
	result.Content = out
	return result, nil
}

// applyNormalised lifts the title and format metadata a normaliser found.
func applyNormalised(meta *domain.DocumentMetadata, res normalisers.Result) {
	if res.Title != "" {
		meta.Title = res.Title
	}
	if len(res.Metadata) == 0 {
		return
	}
	if meta.Custom == nil {
		meta.Custom = make(map[string]any, len(res.Metadata))
	}
	for k, v := range res.Metadata {
		meta.Custom[k] = v
	}
}

func (a *App) workflowsFor(content domain.ProcessedContent, req ProcessRequest) ([]string, error) {
	var categories []string
	if req.Workflow != "" {
		if _, err := a.Workflows.Get(req.Workflow); err != nil {
			return nil, err
		}
		categories = append(categories, req.Workflow)
	}
	if req.Auto {
		matched, err := a.Workflows.Match(content)
		if err != nil {
			return nil, err
		}
		for _, c := range matched {
			if c != req.Workflow {
				categories = append(categories, c)
			}
		}
	}
	return categories, nil
}

// ContentDocument converts processed content to the document shape the
// record store indexes. Graph nodes double as the chunk list.
func ContentDocument(c domain.ProcessedContent) domain.ProcessedDocument {
	return domain.ProcessedDocument{
		Content:  c.Content,
		Metadata: c.Metadata,
		Chunks:   c.Relationships.Nodes,
		Graph:    c.Relationships,
	}
}
