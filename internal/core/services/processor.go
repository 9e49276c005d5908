package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
	"github.com/custodia-labs/noteflow/internal/core/ports/driving"
	"github.com/custodia-labs/noteflow/internal/logger"
	"github.com/custodia-labs/noteflow/internal/metrics"
)

// Ensure ContentProcessor implements the interface.
var _ driving.ContentProcessor = (*ContentProcessor)(nil)

// maxTitleLength bounds titles derived from the first line of text.
const maxTitleLength = 120

// Keys ExtractMetadata writes into DocumentMetadata.Custom.
const (
	MetaWordCount = "word_count"
	MetaCharCount = "char_count"
	MetaLanguage  = "language"
)

// ContentProcessor dispatches content to the backend for its type, normalises
// the result to ProcessedContent and optionally runs a workflow over it.
type ContentProcessor struct {
	models    *ModelRegistry
	workflows driving.WorkflowEngine
	chunker   driven.Chunker
	graph     driven.GraphBuilder
	now       func() time.Time
}

// NewContentProcessor creates a content processor.
func NewContentProcessor(
	models *ModelRegistry,
	workflows driving.WorkflowEngine,
	chunker driven.Chunker,
	graph driven.GraphBuilder,
) *ContentProcessor {
	return &ContentProcessor{
		models:    models,
		workflows: workflows,
		chunker:   chunker,
		graph:     graph,
		now:       time.Now,
	}
}

// ProcessContent turns content into ProcessedContent using the backend for
// pctx.ContentType. When pctx.Workflow is set the result is run through it.
func (p *ContentProcessor) ProcessContent(
	ctx context.Context,
	content []byte,
	pctx domain.ProcessingContext,
) (result domain.ProcessedContent, err error) {
	start := time.Now()
	ct := pctx.ContentType
	defer func() {
		metrics.RecordProcessing(string(ct), err, time.Since(start))
	}()

	if !ct.Valid() {
		return domain.ProcessedContent{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedContentType, ct)
	}

	logger.Debug("Processing %d bytes of %s content", len(content), ct)

	backend, err := p.models.Resolve(ctx, ct, pctx.ModelConfig)
	if err != nil {
		return domain.ProcessedContent{}, fmt.Errorf("get %s model: %w", ct, err)
	}

	switch ct {
	case domain.ContentTypeText:
		result, err = p.processText(ctx, string(content), backend)
	case domain.ContentTypeImage:
		result, err = p.processImage(ctx, content, backend)
	case domain.ContentTypeVideo:
		result, err = p.processVideo(ctx, content, backend)
	case domain.ContentTypeAudio:
		result, err = p.processAudio(ctx, content, backend)
	case domain.ContentTypeTable:
		result, err = p.processTable(ctx, content, backend)
	default:
		return domain.ProcessedContent{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedContentType, ct)
	}
	if err != nil {
		return domain.ProcessedContent{}, fmt.Errorf("process %s content: %w", ct, err)
	}

	if pctx.Workflow != nil {
		result, err = p.workflows.Execute(ctx, result, *pctx.Workflow)
		if err != nil {
			return domain.ProcessedContent{}, fmt.Errorf("apply workflow: %w", err)
		}
	}

	return result, nil
}

func (p *ContentProcessor) processText(ctx context.Context, text string, backend driven.Backend) (domain.ProcessedContent, error) {
	tb, ok := backend.(driven.TextBackend)
	if !ok {
		return domain.ProcessedContent{}, fmt.Errorf("%w: %T", domain.ErrBackendMismatch, backend)
	}

	chunks := p.CreateSemanticChunks(text)
	metadata := p.ExtractMetadata(text)

	extra, err := tb.ExtractMetadata(ctx, text)
	if err != nil {
		return domain.ProcessedContent{}, fmt.Errorf("extract metadata: %w", err)
	}
	metadata = mergeMetadata(metadata, extra)

	return domain.ProcessedContent{
		Content:       text,
		Metadata:      metadata,
		Relationships: p.BuildDocumentGraph(chunks),
	}, nil
}

func (p *ContentProcessor) processImage(ctx context.Context, image []byte, backend driven.Backend) (domain.ProcessedContent, error) {
	ib, ok := backend.(driven.ImageBackend)
	if !ok {
		return domain.ProcessedContent{}, fmt.Errorf("%w: %T", domain.ErrBackendMismatch, backend)
	}

	description, err := ib.Analyze(ctx, image)
	if err != nil {
		return domain.ProcessedContent{}, fmt.Errorf("analyze: %w", err)
	}
	values, err := ib.ExtractMetadata(ctx, image)
	if err != nil {
		return domain.ProcessedContent{}, fmt.Errorf("extract metadata: %w", err)
	}
	text, err := ib.ExtractText(ctx, image)
	if err != nil {
		return domain.ProcessedContent{}, fmt.Errorf("extract text: %w", err)
	}

	values = withValue(values, domain.MetaDescription, description)
	return p.singleChunk(domain.ContentTypeImage, text, values), nil
}

func (p *ContentProcessor) processVideo(ctx context.Context, video []byte, backend driven.Backend) (domain.ProcessedContent, error) {
	vb, ok := backend.(driven.VideoBackend)
	if !ok {
		return domain.ProcessedContent{}, fmt.Errorf("%w: %T", domain.ErrBackendMismatch, backend)
	}

	frames, err := vb.ExtractKeyFrames(ctx, video)
	if err != nil {
		return domain.ProcessedContent{}, fmt.Errorf("extract key frames: %w", err)
	}
	transcript, err := vb.Transcribe(ctx, video)
	if err != nil {
		return domain.ProcessedContent{}, fmt.Errorf("transcribe: %w", err)
	}
	values, err := vb.ExtractMetadata(ctx, video)
	if err != nil {
		return domain.ProcessedContent{}, fmt.Errorf("extract metadata: %w", err)
	}

	if frames == nil {
		frames = []driven.Frame{}
	}
	values = withValue(values, domain.MetaFrames, frames)
	return p.singleChunk(domain.ContentTypeVideo, transcript, values), nil
}

func (p *ContentProcessor) processAudio(ctx context.Context, audio []byte, backend driven.Backend) (domain.ProcessedContent, error) {
	ab, ok := backend.(driven.AudioBackend)
	if !ok {
		return domain.ProcessedContent{}, fmt.Errorf("%w: %T", domain.ErrBackendMismatch, backend)
	}

	transcript, err := ab.Transcribe(ctx, audio)
	if err != nil {
		return domain.ProcessedContent{}, fmt.Errorf("transcribe: %w", err)
	}
	values, err := ab.ExtractMetadata(ctx, audio)
	if err != nil {
		return domain.ProcessedContent{}, fmt.Errorf("extract metadata: %w", err)
	}

	return p.singleChunk(domain.ContentTypeAudio, transcript, values), nil
}

func (p *ContentProcessor) processTable(ctx context.Context, table []byte, backend driven.Backend) (domain.ProcessedContent, error) {
	tb, ok := backend.(driven.TableBackend)
	if !ok {
		return domain.ProcessedContent{}, fmt.Errorf("%w: %T", domain.ErrBackendMismatch, backend)
	}

	structure, err := tb.ExtractStructure(ctx, table)
	if err != nil {
		return domain.ProcessedContent{}, fmt.Errorf("extract structure: %w", err)
	}
	data, err := tb.ExtractData(ctx, structure)
	if err != nil {
		return domain.ProcessedContent{}, fmt.Errorf("extract data: %w", err)
	}
	values, err := tb.AnalyzeContent(ctx, data)
	if err != nil {
		return domain.ProcessedContent{}, fmt.Errorf("analyze content: %w", err)
	}

	serialized, err := json.Marshal(data)
	if err != nil {
		return domain.ProcessedContent{}, fmt.Errorf("serialise table data: %w", err)
	}
	return p.singleChunk(domain.ContentTypeTable, string(serialized), values), nil
}

// singleChunk builds content whose graph is one chunk holding text.
func (p *ContentProcessor) singleChunk(ct domain.ContentType, text string, values map[string]any) domain.ProcessedContent {
	return domain.ProcessedContent{
		Content:       text,
		Metadata:      domain.NewMetadata(ct, values, p.now()),
		Relationships: p.BuildDocumentGraph([]domain.SemanticChunk{{Content: text}}),
	}
}

// ProcessDocument reads a text document and returns it with chunks and graph.
func (p *ContentProcessor) ProcessDocument(ctx context.Context, name string, r io.Reader) (domain.ProcessedDocument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.ProcessedDocument{}, fmt.Errorf("read %s: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return domain.ProcessedDocument{}, err
	}

	text := string(data)
	chunks := p.CreateSemanticChunks(text)
	metadata := p.ExtractMetadata(text)
	if metadata.Title == "" {
		metadata.Title = name
	}

	logger.Debug("Document %s: %d chunks", name, len(chunks))

	return domain.ProcessedDocument{
		Content:  text,
		Metadata: metadata,
		Chunks:   chunks,
		Graph:    p.BuildDocumentGraph(chunks),
	}, nil
}

// ApplyWorkflow runs content through wf.
func (p *ContentProcessor) ApplyWorkflow(
	ctx context.Context,
	content domain.ProcessedContent,
	wf domain.WorkflowDefinition,
) (domain.ProcessedContent, error) {
	return p.workflows.Execute(ctx, content, wf)
}

// FormatByCategory looks up the workflow registered for category and applies it.
func (p *ContentProcessor) FormatByCategory(
	ctx context.Context,
	content domain.ProcessedContent,
	category string,
) (domain.ProcessedContent, error) {
	wf, err := p.workflows.Get(category)
	if err != nil {
		return domain.ProcessedContent{}, err
	}
	return p.ApplyWorkflow(ctx, content, wf)
}

// GetModel returns the backend for ct.
func (p *ContentProcessor) GetModel(ctx context.Context, ct domain.ContentType) (driven.Backend, error) {
	return p.models.GetModel(ctx, ct)
}

// SetModel replaces the backend for ct.
func (p *ContentProcessor) SetModel(ct domain.ContentType, backend driven.Backend) error {
	return p.models.SetModel(ct, backend)
}

// CreateSemanticChunks splits text into chunks. The result is never empty.
func (p *ContentProcessor) CreateSemanticChunks(text string) []domain.SemanticChunk {
	var chunks []domain.SemanticChunk
	if p.chunker != nil {
		chunks = p.chunker.Chunk(text)
	}
	if len(chunks) == 0 {
		chunks = []domain.SemanticChunk{{Content: text}}
	}
	return chunks
}

// BuildDocumentGraph relates chunks. Without a graph builder the graph has
// no edges.
func (p *ContentProcessor) BuildDocumentGraph(chunks []domain.SemanticChunk) domain.DocumentGraph {
	if p.graph == nil {
		return domain.DocumentGraph{Nodes: chunks, Edges: []domain.Edge{}}
	}
	return p.graph.Build(chunks)
}

// ExtractMetadata derives text metadata: timestamps, a title from the first
// heading or line, the detected language and word and character counts.
func (p *ContentProcessor) ExtractMetadata(text string) domain.DocumentMetadata {
	now := p.now()
	words := strings.Fields(text)
	custom := map[string]any{
		MetaWordCount: len(words),
		MetaCharCount: utf8.RuneCountInString(text),
	}
	if len(words) > 0 {
		if info := whatlanggo.Detect(text); info.IsReliable() {
			custom[MetaLanguage] = info.Lang.String()
		}
	}
	return domain.DocumentMetadata{
		Title:       deriveTitle(text),
		Created:     now,
		Modified:    now,
		ContentType: domain.ContentTypeText,
		Custom:      custom,
	}
}

func deriveTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimSpace(strings.TrimLeft(line, "#"))
		if utf8.RuneCountInString(line) > maxTitleLength {
			line = string([]rune(line)[:maxTitleLength])
		}
		return line
	}
	return ""
}

// mergeMetadata lifts well-known keys into meta and copies the rest into Custom.
func mergeMetadata(meta domain.DocumentMetadata, values map[string]any) domain.DocumentMetadata {
	extra := domain.NewMetadata(meta.ContentType, values, meta.Created)
	if extra.Title != "" {
		meta.Title = extra.Title
	}
	if extra.Description != "" {
		meta.Description = extra.Description
	}
	if len(extra.Tags) > 0 {
		meta.Tags = extra.Tags
	}
	if len(extra.Custom) > 0 && meta.Custom == nil {
		meta.Custom = make(map[string]any, len(extra.Custom))
	}
	for k, v := range extra.Custom {
		meta.Custom[k] = v
	}
	return meta
}

func withValue(values map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(values)+1)
	for k, v := range values {
		out[k] = v
	}
	out[key] = value
	return out
}
