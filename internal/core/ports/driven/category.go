package driven

import (
	"context"

	"github.com/custodia-labs/noteflow/internal/core/domain"
)

// CategoryRule scores an input against one category.
// Evaluate must be safe to call concurrently and must not mutate shared state.
type CategoryRule interface {
	// Category returns the category this rule scores.
	Category() domain.Category

	// Evaluate returns a confidence in [0, 1].
	Evaluate(ctx context.Context, input any) (float64, error)
}
