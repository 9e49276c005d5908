package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/noteflow/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=backends.go -destination=../../../mocks/mock_backends.go -package=mocks

// Backend is a loaded model handle. Concrete backends implement the capability
// interface matching the content type they are registered for.
type Backend any

// TextBackend analyses text content.
type TextBackend interface {
	// Analyze returns a processed rendition of the text (summary, cleaned text).
	Analyze(ctx context.Context, text string) (string, error)

	// ExtractMetadata returns backend-specific metadata for the text.
	ExtractMetadata(ctx context.Context, text string) (map[string]any, error)
}

// ImageBackend describes images and extracts text from them.
type ImageBackend interface {
	// Analyze returns a natural-language description of the image.
	Analyze(ctx context.Context, image []byte) (string, error)

	// ExtractText returns any text visible in the image.
	ExtractText(ctx context.Context, image []byte) (string, error)

	// ExtractMetadata returns image properties (format, dimensions, ...).
	ExtractMetadata(ctx context.Context, image []byte) (map[string]any, error)
}

// Frame is a key frame extracted from a video.
type Frame struct {
	Index       int           `json:"index"`
	Timestamp   time.Duration `json:"timestamp"`
	Description string        `json:"description,omitempty"`
}

// VideoBackend extracts frames, speech and metadata from videos.
type VideoBackend interface {
	// ExtractKeyFrames returns representative frames in playback order.
	ExtractKeyFrames(ctx context.Context, video []byte) ([]Frame, error)

	// Transcribe returns the spoken content.
	Transcribe(ctx context.Context, video []byte) (string, error)

	// ExtractMetadata returns video properties.
	ExtractMetadata(ctx context.Context, video []byte) (map[string]any, error)
}

// AudioBackend transcribes audio.
type AudioBackend interface {
	// Transcribe returns the spoken content.
	Transcribe(ctx context.Context, audio []byte) (string, error)

	// ExtractMetadata returns audio properties.
	ExtractMetadata(ctx context.Context, audio []byte) (map[string]any, error)
}

// TableStructure is the detected layout of tabular input.
type TableStructure struct {
	Delimiter rune       `json:"delimiter"`
	Headers   []string   `json:"headers"`
	Rows      [][]string `json:"rows"`
}

// TableData is the extracted content of a table, one map per row keyed by header.
type TableData struct {
	Columns []string            `json:"columns"`
	Records []map[string]string `json:"records"`
}

// TableBackend extracts structured data from tables.
type TableBackend interface {
	// ExtractStructure detects the table layout.
	ExtractStructure(ctx context.Context, table []byte) (TableStructure, error)

	// ExtractData turns the structure into records.
	ExtractData(ctx context.Context, structure TableStructure) (TableData, error)

	// AnalyzeContent summarises the data as metadata.
	AnalyzeContent(ctx context.Context, data TableData) (map[string]any, error)
}

// BackendLoader builds a backend for a model configuration.
type BackendLoader interface {
	Load(ctx context.Context, cfg domain.ModelConfig) (Backend, error)
}

// BackendLoaderFunc adapts a function to BackendLoader.
type BackendLoaderFunc func(ctx context.Context, cfg domain.ModelConfig) (Backend, error)

// Load calls f.
func (f BackendLoaderFunc) Load(ctx context.Context, cfg domain.ModelConfig) (Backend, error) {
	return f(ctx, cfg)
}

// Supports returns true if backend implements the capability set for ct.
func Supports(ct domain.ContentType, backend Backend) bool {
	switch ct {
	case domain.ContentTypeText:
		_, ok := backend.(TextBackend)
		return ok
	case domain.ContentTypeImage:
		_, ok := backend.(ImageBackend)
		return ok
	case domain.ContentTypeVideo:
		_, ok := backend.(VideoBackend)
		return ok
	case domain.ContentTypeAudio:
		_, ok := backend.(AudioBackend)
		return ok
	case domain.ContentTypeTable:
		_, ok := backend.(TableBackend)
		return ok
	default:
		return false
	}
}
