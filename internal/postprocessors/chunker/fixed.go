// Package chunker splits normalised text into chunks for the relationship graph.
//
// Two strategies are provided: Fixed, a sliding window of fixed rune length,
// and Semantic, which follows markdown headings and paragraph boundaries and
// falls back to the fixed window for oversized paragraphs.
package chunker

import (
	"github.com/google/uuid"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.Chunker = (*Fixed)(nil)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Chunk metadata keys.
const (
	MetaID       = domain.ChunkID
	MetaPosition = domain.ChunkPosition
	MetaHeading  = domain.ChunkHeading
)

// Fixed splits text into fixed-size, overlapping windows.
type Fixed struct {
	chunkSize int
	overlap   int
}

// Option configures a chunker.
type Option func(*options)

type options struct {
	chunkSize int
	overlap   int
}

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(o *options) {
		if overlap >= 0 {
			o.overlap = overlap
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}
	for _, opt := range opts {
		opt(&o)
	}

	// Ensure overlap doesn't exceed chunk size
	if o.overlap >= o.chunkSize {
		o.overlap = o.chunkSize / 4
	}
	return o
}

// NewFixed creates a fixed-size chunker with the given options.
func NewFixed(opts ...Option) *Fixed {
	o := buildOptions(opts)
	return &Fixed{chunkSize: o.chunkSize, overlap: o.overlap}
}

// Name returns the chunker name.
func (f *Fixed) Name() string {
	return "fixed"
}

// Chunk splits text into windows of chunkSize runes, each starting
// chunkSize-overlap runes after the previous one. Empty text yields a single
// empty chunk.
func (f *Fixed) Chunk(text string) []domain.SemanticChunk {
	parts := window([]rune(text), f.chunkSize, f.overlap)
	chunks := make([]domain.SemanticChunk, 0, len(parts))
	for _, part := range parts {
		chunks = append(chunks, newChunk(part, len(chunks), ""))
	}
	return chunks
}

// window slices runes into overlapping windows. It always returns at least
// one element.
func window(runes []rune, size, overlap int) []string {
	if len(runes) <= size {
		return []string{string(runes)}
	}

	step := size - overlap
	if step <= 0 {
		step = size
	}

	// Estimate number of windows
	out := make([]string, 0, len(runes)/step+1)
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end >= len(runes) {
			out = append(out, string(runes[start:]))
			break
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}

func newChunk(content string, position int, heading string) domain.SemanticChunk {
	meta := map[string]any{
		MetaID:       uuid.New().String(),
		MetaPosition: position,
	}
	if heading != "" {
		meta[MetaHeading] = heading
	}
	return domain.SemanticChunk{Content: content, Metadata: meta}
}
