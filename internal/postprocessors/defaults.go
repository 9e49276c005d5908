package postprocessors

import (
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
	"github.com/custodia-labs/noteflow/internal/postprocessors/chunker"
	"github.com/custodia-labs/noteflow/internal/postprocessors/graph"
)

// DefaultChunker is the chunker used when configuration names none.
const DefaultChunker = "semantic"

// RegisterDefaults registers all built-in chunkers with the registry.
// Call this during application initialisation to enable standard chunkers.
func RegisterDefaults(r *Registry) {
	r.Register("semantic", func(cfg map[string]any) (driven.Chunker, error) {
		return chunker.NewSemantic(chunkerOptions(cfg)...), nil
	})
	r.Register("fixed", func(cfg map[string]any) (driven.Chunker, error) {
		return chunker.NewFixed(chunkerOptions(cfg)...), nil
	})
}

// NewGraphBuilder creates the graph builder from generic config.
// Supported config keys:
//   - similarity_threshold (float): minimum similarity for an edge (default: 0.3)
func NewGraphBuilder(cfg map[string]any) driven.GraphBuilder {
	var opts []graph.Option
	if t := getFloatFromConfig(cfg, "similarity_threshold"); t > 0 {
		opts = append(opts, graph.WithSimilarityThreshold(t))
	}
	return graph.New(opts...)
}

// chunkerOptions converts generic config into chunker options.
// Supported config keys:
//   - chunk_size (int): Characters per chunk (default: 1000)
//   - overlap (int): Overlapping characters between chunks (default: 200)
func chunkerOptions(cfg map[string]any) []chunker.Option {
	var opts []chunker.Option

	if cfg != nil {
		if size := getIntFromConfig(cfg, "chunk_size"); size > 0 {
			opts = append(opts, chunker.WithChunkSize(size))
		}
		if _, ok := cfg["overlap"]; ok {
			opts = append(opts, chunker.WithOverlap(getIntFromConfig(cfg, "overlap")))
		}
	}

	return opts
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func getFloatFromConfig(cfg map[string]any, key string) float64 {
	switch v := cfg[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}
