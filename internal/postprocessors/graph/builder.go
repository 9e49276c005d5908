// Package graph relates semantic chunks to each other.
package graph

import (
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.GraphBuilder = (*Builder)(nil)

// DefaultSimilarityThreshold is the minimum token Jaccard similarity for a
// similarity edge.
const DefaultSimilarityThreshold = 0.3

// Builder produces sequence, similarity and reference edges.
type Builder struct {
	threshold   float64
	minTokenLen int
}

// Option configures a Builder.
type Option func(*Builder)

// WithSimilarityThreshold sets the similarity edge threshold. Values outside
// (0, 1] are ignored.
func WithSimilarityThreshold(t float64) Option {
	return func(b *Builder) {
		if t > 0 && t <= 1 {
			b.threshold = t
		}
	}
}

// New creates a graph builder.
func New(opts ...Option) *Builder {
	b := &Builder{
		threshold:   DefaultSimilarityThreshold,
		minTokenLen: 3,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns a graph whose nodes are chunks in order. Edges:
//   - sequence i->i+1, weight 1
//   - similarity i->j (i<j, not adjacent) when token similarity reaches the threshold
//   - reference i->j when chunk i mentions the heading of chunk j
func (b *Builder) Build(chunks []domain.SemanticChunk) domain.DocumentGraph {
	nodes := append([]domain.SemanticChunk(nil), chunks...)
	edges := make([]domain.Edge, 0, len(nodes))

	for i := 0; i+1 < len(nodes); i++ {
		edges = append(edges, domain.Edge{Source: i, Target: i + 1, Weight: 1, Type: domain.EdgeSequence})
	}

	tokens := lo.Map(nodes, func(c domain.SemanticChunk, _ int) map[string]struct{} {
		return b.tokenSet(c.Content)
	})
	for i := range nodes {
		for j := i + 2; j < len(nodes); j++ {
			if sim := Jaccard(tokens[i], tokens[j]); sim >= b.threshold {
				edges = append(edges, domain.Edge{Source: i, Target: j, Weight: sim, Type: domain.EdgeSimilarity})
			}
		}
	}

	headings := lo.Map(nodes, func(c domain.SemanticChunk, _ int) string {
		h, _ := c.Metadata[domain.ChunkHeading].(string)
		return strings.ToLower(h)
	})
	for i := range nodes {
		content := strings.ToLower(nodes[i].Content)
		for j := range nodes {
			if i == j || headings[j] == "" || headings[j] == headings[i] {
				continue
			}
			if strings.Contains(content, headings[j]) {
				edges = append(edges, domain.Edge{Source: i, Target: j, Weight: 1, Type: domain.EdgeReference})
			}
		}
	}

	return domain.DocumentGraph{Nodes: nodes, Edges: edges}
}

func (b *Builder) tokenSet(text string) map[string]struct{} {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if len([]rune(w)) >= b.minTokenLen {
			set[w] = struct{}{}
		}
	}
	return set
}

// Jaccard returns |a∩b| / |a∪b|, or 0 when both sets are empty.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
