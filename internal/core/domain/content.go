package domain

import (
	"fmt"
	"strings"
	"time"
)

// ContentType identifies the kind of content being processed.
// It drives both backend selection and the processing branch.
type ContentType string

const (
	// ContentTypeText is plain or markdown text.
	ContentTypeText ContentType = "text"
	// ContentTypeImage is a still image.
	ContentTypeImage ContentType = "image"
	// ContentTypeVideo is a video recording.
	ContentTypeVideo ContentType = "video"
	// ContentTypeAudio is an audio recording.
	ContentTypeAudio ContentType = "audio"
	// ContentTypeTable is tabular data (CSV/TSV).
	ContentTypeTable ContentType = "table"
)

// ContentTypes returns every supported content type in declaration order.
func ContentTypes() []ContentType {
	return []ContentType{
		ContentTypeText,
		ContentTypeImage,
		ContentTypeVideo,
		ContentTypeAudio,
		ContentTypeTable,
	}
}

// Valid returns true if the content type is part of the closed enumeration.
func (c ContentType) Valid() bool {
	switch c {
	case ContentTypeText, ContentTypeImage, ContentTypeVideo, ContentTypeAudio, ContentTypeTable:
		return true
	default:
		return false
	}
}

// String returns the content type identifier.
func (c ContentType) String() string {
	return string(c)
}

// ParseContentType converts a string to a ContentType.
// Matching is case-insensitive.
func ParseContentType(s string) (ContentType, error) {
	ct := ContentType(strings.ToLower(strings.TrimSpace(s)))
	if !ct.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedContentType, s)
	}
	return ct, nil
}

// ProcessingContext carries the per-request processing instructions.
// It is created by the caller and not modified during processing.
type ProcessingContext struct {
	// ContentType selects the backend and the processing branch.
	ContentType ContentType

	// Workflow is applied to the processed content when set.
	Workflow *WorkflowDefinition

	// ModelConfig overrides the registered model configuration for this request.
	ModelConfig *ModelConfig
}

// DocumentMetadata describes a processed piece of content.
type DocumentMetadata struct {
	// Title is the human-readable title.
	Title string `json:"title,omitempty"`

	// Description is a short summary, e.g. an image description.
	Description string `json:"description,omitempty"`

	// Tags are free-form labels. Order is not significant.
	Tags []string `json:"tags,omitempty"`

	// Category is set by categorize actions.
	Category string `json:"category,omitempty"`

	// Location is set by move actions.
	Location string `json:"location,omitempty"`

	// Created is when the content was extracted.
	Created time.Time `json:"created"`

	// Modified is when the content was last modified.
	Modified time.Time `json:"modified"`

	// ContentType is the type of the content actually processed.
	ContentType ContentType `json:"contentType"`

	// Custom contains backend-specific key-value pairs.
	Custom map[string]any `json:"customMetadata,omitempty"`
}

// Clone returns a copy whose Tags slice and Custom map are not shared.
func (m DocumentMetadata) Clone() DocumentMetadata {
	out := m
	if m.Tags != nil {
		out.Tags = append([]string(nil), m.Tags...)
	}
	if m.Custom != nil {
		out.Custom = make(map[string]any, len(m.Custom))
		for k, v := range m.Custom {
			out.Custom[k] = v
		}
	}
	return out
}

// Well-known keys in backend metadata maps that map onto DocumentMetadata fields.
const (
	MetaTitle       = "title"
	MetaDescription = "description"
	MetaTags        = "tags"
	MetaFrames      = "frames"
)

// NewMetadata builds DocumentMetadata for content of the given type from a
// backend-produced key-value map. Well-known keys are lifted into typed fields;
// everything else lands in Custom.
func NewMetadata(ct ContentType, values map[string]any, now time.Time) DocumentMetadata {
	meta := DocumentMetadata{
		Created:     now,
		Modified:    now,
		ContentType: ct,
	}

	for key, value := range values {
		switch key {
		case MetaTitle:
			if s, ok := value.(string); ok {
				meta.Title = s
				continue
			}
		case MetaDescription:
			if s, ok := value.(string); ok {
				meta.Description = s
				continue
			}
		case MetaTags:
			if tags, ok := value.([]string); ok {
				meta.Tags = append([]string(nil), tags...)
				continue
			}
		}
		if meta.Custom == nil {
			meta.Custom = make(map[string]any)
		}
		meta.Custom[key] = value
	}

	return meta
}

// SemanticChunk is a node of the relationship graph.
type SemanticChunk struct {
	// Content is the text of this chunk.
	Content string `json:"content"`

	// Metadata contains chunk-specific key-value pairs (id, position, heading).
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Well-known keys in SemanticChunk.Metadata.
const (
	ChunkID       = "id"
	ChunkPosition = "position"
	ChunkHeading  = "heading"
)

// Built-in edge types. The vocabulary is open; callers may add their own.
const (
	EdgeSequence   = "sequence"
	EdgeSimilarity = "similarity"
	EdgeReference  = "reference"
)

// Edge is a directed, weighted, typed relation between two graph nodes.
// Source and Target are indices into DocumentGraph.Nodes.
type Edge struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Weight float64 `json:"weight"`
	Type   string  `json:"type"`
}

// DocumentGraph is the relationship graph over a document's chunks.
type DocumentGraph struct {
	Nodes []SemanticChunk `json:"nodes"`
	Edges []Edge          `json:"edges"`
}

// Validate checks that every edge endpoint indexes into Nodes.
func (g DocumentGraph) Validate() error {
	for i, e := range g.Edges {
		if e.Source < 0 || e.Source >= len(g.Nodes) || e.Target < 0 || e.Target >= len(g.Nodes) {
			return fmt.Errorf("%w: edge %d (%d->%d) outside %d nodes",
				ErrInvalidInput, i, e.Source, e.Target, len(g.Nodes))
		}
	}
	return nil
}

// FormatRule describes presentation styling for a selector.
type FormatRule struct {
	Selector string            `json:"selector" yaml:"selector" toml:"selector" validate:"required"`
	Style    map[string]string `json:"style" yaml:"style" toml:"style"`
}

// ProcessedContent is the canonical output of content processing and the
// input/output of every workflow action.
type ProcessedContent struct {
	Content       string           `json:"content"`
	Metadata      DocumentMetadata `json:"metadata"`
	Relationships DocumentGraph    `json:"relationships"`
	Format        []FormatRule     `json:"format,omitempty"`
}

// ProcessedDocument is the whole-document result of processing a file.
type ProcessedDocument struct {
	Content  string           `json:"content"`
	Metadata DocumentMetadata `json:"metadata"`
	Chunks   []SemanticChunk  `json:"chunks"`
	Graph    DocumentGraph    `json:"graph"`
}

// ToProcessedContent converts a document to the shape workflows operate on.
func (d ProcessedDocument) ToProcessedContent() ProcessedContent {
	return ProcessedContent{
		Content:       d.Content,
		Metadata:      d.Metadata,
		Relationships: d.Graph,
	}
}
