package driving

import (
	"context"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
)

// Categorizer ranks category suggestions for arbitrary input.
type Categorizer interface {
	// Categorize returns suggestions above the threshold, best first.
	Categorize(ctx context.Context, input any) ([]domain.CategoryScore, error)

	// AddRule appends a scoring rule.
	AddRule(rule driven.CategoryRule)
}
