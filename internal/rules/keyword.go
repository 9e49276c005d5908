package rules

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.CategoryRule = (*KeywordRule)(nil)

// KeywordRule scores input by the fraction of its distinct keywords that
// occur in the input text. Matching is case-insensitive.
type KeywordRule struct {
	category domain.Category
	keywords int
	matcher  *goahocorasick.Machine
}

// NewKeywordRule builds the Aho-Corasick automaton for keywords.
func NewKeywordRule(category domain.Category, keywords ...string) (*KeywordRule, error) {
	normalized := lo.Uniq(lo.FilterMap(keywords, func(k string, _ int) (string, bool) {
		k = strings.ToLower(strings.TrimSpace(k))
		return k, k != ""
	}))
	if len(normalized) == 0 {
		return nil, fmt.Errorf("%w: keyword rule %q has no keywords", domain.ErrInvalidConfig, category.ID)
	}

	patterns := lo.Map(normalized, func(k string, _ int) []rune { return []rune(k) })
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, fmt.Errorf("build keyword matcher: %w", err)
	}

	return &KeywordRule{category: category, keywords: len(normalized), matcher: m}, nil
}

// Category returns the category this rule scores.
func (r *KeywordRule) Category() domain.Category {
	return r.category
}

// Evaluate returns the share of keywords found in the input.
func (r *KeywordRule) Evaluate(_ context.Context, input any) (float64, error) {
	text := []rune(strings.Map(unicode.ToLower, Text(input)))
	if len(text) == 0 {
		return 0, nil
	}

	found := make(map[string]struct{})
	for _, term := range r.matcher.MultiPatternSearch(text, false) {
		found[string(term.Word)] = struct{}{}
	}
	return float64(len(found)) / float64(r.keywords), nil
}
