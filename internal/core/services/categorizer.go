package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/samber/lo"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
	"github.com/custodia-labs/noteflow/internal/core/ports/driving"
	"github.com/custodia-labs/noteflow/internal/metrics"
)

// Ensure Categorizer implements the interface.
var _ driving.Categorizer = (*Categorizer)(nil)

// Categorizer scores input against a set of category rules.
type Categorizer struct {
	mu    sync.RWMutex
	rules []driven.CategoryRule
}

// NewCategorizer creates a categorizer with the given rules.
func NewCategorizer(rules ...driven.CategoryRule) *Categorizer {
	return &Categorizer{rules: rules}
}

// AddRule appends a rule. Rules are never removed.
func (c *Categorizer) AddRule(rule driven.CategoryRule) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rules = append(c.rules, rule)
}

// Categorize evaluates every rule concurrently and returns the scores above
// domain.CategoryThreshold, highest confidence first. Any rule error fails
// the whole call.
func (c *Categorizer) Categorize(ctx context.Context, input any) ([]domain.CategoryScore, error) {
	c.mu.RLock()
	rules := append([]driven.CategoryRule(nil), c.rules...)
	c.mu.RUnlock()

	scores := make([]domain.CategoryScore, len(rules))
	errs := make([]error, len(rules))

	var wg sync.WaitGroup
	for i, rule := range rules {
		wg.Add(1)
		go func() {
			defer wg.Done()
			confidence, err := rule.Evaluate(ctx, input)
			metrics.RecordRuleEvaluation(err)
			if err != nil {
				errs[i] = fmt.Errorf("rule %q: %w", rule.Category().ID, err)
				return
			}
			scores[i] = domain.CategoryScore{Category: rule.Category(), Confidence: confidence}
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	kept := lo.Filter(scores, func(s domain.CategoryScore, _ int) bool {
		return s.Confidence > domain.CategoryThreshold
	})
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Confidence > kept[j].Confidence
	})
	return kept, nil
}
