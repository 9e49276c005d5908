package rules

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
	"github.com/custodia-labs/noteflow/internal/logger"
)

// Verify interface compliance.
var _ driven.CategoryRule = (*AIRule)(nil)

const scorePrompt = `Rate how well the following content fits the category %q (%s).
Reply with a single number between 0 and 1.

%s`

var scorePattern = regexp.MustCompile(`[0-9]*\.?[0-9]+`)

// AIRule asks the AI access service for a score. Fallback responses and
// unparsable answers score zero.
type AIRule struct {
	category  domain.Category
	completer driven.Completer
	opts      domain.RequestOptions
}

// NewAIRule creates a rule scored by completer.
func NewAIRule(category domain.Category, completer driven.Completer, opts domain.RequestOptions) *AIRule {
	return &AIRule{category: category, completer: completer, opts: opts}
}

// Category returns the category this rule scores.
func (r *AIRule) Category() domain.Category {
	return r.category
}

// Evaluate prompts the model and parses the first number in its answer,
// clamped to [0, 1].
func (r *AIRule) Evaluate(ctx context.Context, input any) (float64, error) {
	prompt := fmt.Sprintf(scorePrompt, r.category.Name, r.category.Description, Text(input))
	resp := r.completer.ProcessRequest(ctx, prompt, r.opts)
	if resp.IsFallback() {
		return 0, nil
	}
	return ParseScore(resp.Text), nil
}

// ParseScore extracts the first number in text, clamped to [0, 1].
// Text without a number scores 0.
func ParseScore(text string) float64 {
	match := scorePattern.FindString(text)
	if match == "" {
		logger.Debug("No score in model answer %q", text)
		return 0
	}
	score, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return min(max(score, 0), 1)
}
