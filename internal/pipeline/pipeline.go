package pipeline

import (
	"context"
	"fmt"

	"github.com/custodia-labs/noteflow/internal/logger"
)

// Step transforms a value. Steps run in the order they were added.
type Step[T any] func(ctx context.Context, input T) (T, error)

// StateUpdater receives every intermediate result.
// *ContextManager satisfies it.
type StateUpdater interface {
	UpdateState(state any)
}

// Pipeline chains steps and reports each result to a StateUpdater.
type Pipeline[T any] struct {
	steps []Step[T]
	state StateUpdater
}

// New creates an empty pipeline. state may be nil.
func New[T any](state StateUpdater) *Pipeline[T] {
	return &Pipeline[T]{state: state}
}

// Add appends a step to the pipeline.
func (p *Pipeline[T]) Add(step Step[T]) {
	p.steps = append(p.steps, step)
}

// Len returns the number of steps in the pipeline.
func (p *Pipeline[T]) Len() int {
	return len(p.steps)
}

// Execute threads input through every step. A failing step stops the run;
// its error is logged and returned wrapped with the step index.
func (p *Pipeline[T]) Execute(ctx context.Context, input T) (T, error) {
	result := input

	for i, step := range p.steps {
		next, err := step(ctx, result)
		if err != nil {
			logger.Error("pipeline step %d failed: %v", i, err)
			var zero T
			return zero, fmt.Errorf("step %d: %w", i, err)
		}
		result = next
		if p.state != nil {
			p.state.UpdateState(result)
		}
	}

	return result, nil
}
