package rules

import (
	"context"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.CategoryRule = FuncRule{}

// FuncRule adapts a function to a category rule.
type FuncRule struct {
	Cat domain.Category
	Fn  func(ctx context.Context, input any) (float64, error)
}

// Category returns the category this rule scores.
func (r FuncRule) Category() domain.Category {
	return r.Cat
}

// Evaluate calls Fn.
func (r FuncRule) Evaluate(ctx context.Context, input any) (float64, error) {
	return r.Fn(ctx, input)
}
