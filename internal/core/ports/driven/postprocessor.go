package driven

import (
	"github.com/custodia-labs/noteflow/internal/core/domain"
)

// Chunker splits normalised text into semantic chunks.
// Implementations must return at least one chunk for any input.
type Chunker interface {
	// Name returns the chunker name for logging and configuration.
	Name() string

	// Chunk splits text into an ordered sequence of chunks.
	Chunk(text string) []domain.SemanticChunk
}

// GraphBuilder relates chunks to each other.
// Every returned edge must index into the given chunks.
type GraphBuilder interface {
	Build(chunks []domain.SemanticChunk) domain.DocumentGraph
}
