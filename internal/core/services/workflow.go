package services

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
	"github.com/custodia-labs/noteflow/internal/core/ports/driving"
	"github.com/custodia-labs/noteflow/internal/logger"
	"github.com/custodia-labs/noteflow/internal/metrics"
)

// Ensure WorkflowEngine implements the interface.
var _ driving.WorkflowEngine = (*WorkflowEngine)(nil)

// WorkflowEngine executes workflow action sequences and owns the
// category -> workflow registrations.
type WorkflowEngine struct {
	templates driven.TemplateStore

	mu        sync.RWMutex
	workflows map[string]domain.WorkflowDefinition
}

// NewWorkflowEngine creates an engine. templates may be nil, in which case
// transform actions leave content unchanged.
func NewWorkflowEngine(templates driven.TemplateStore) *WorkflowEngine {
	return &WorkflowEngine{
		templates: templates,
		workflows: make(map[string]domain.WorkflowDefinition),
	}
}

// Execute threads content through wf's actions in order and returns the result.
// The input is not modified. The first failing action aborts the run and no
// result is returned.
func (e *WorkflowEngine) Execute(
	ctx context.Context,
	content domain.ProcessedContent,
	wf domain.WorkflowDefinition,
) (domain.ProcessedContent, error) {
	out := cloneContent(content)

	for i, action := range wf.Actions {
		if err := ctx.Err(); err != nil {
			return domain.ProcessedContent{}, err
		}

		next, err := e.apply(out, action)
		kind := "unknown"
		if action != nil {
			kind = string(action.Kind())
		}
		metrics.RecordWorkflowAction(kind, err)
		if err != nil {
			return domain.ProcessedContent{}, fmt.Errorf("action %d (%s): %w", i, kind, err)
		}
		out = next
	}

	if wf.Formatting != nil {
		out.Format = slices.Clone(wf.Formatting)
	}

	return out, nil
}

func (e *WorkflowEngine) apply(content domain.ProcessedContent, action domain.Action) (domain.ProcessedContent, error) {
	switch a := action.(type) {
	case domain.TransformAction:
		return e.transform(content, a)
	case domain.FormatAction:
		content.Format = slices.Clone(a.Rules)
	case domain.CategorizeAction:
		content.Metadata.Category = a.Category
	case domain.TagAction:
		content.Metadata.Tags = lo.Uniq(append(content.Metadata.Tags, a.Tags...))
	case domain.MoveAction:
		content.Metadata.Location = a.Destination
	default:
		return domain.ProcessedContent{}, fmt.Errorf("%w: %T", domain.ErrUnsupportedAction, action)
	}
	return content, nil
}

func (e *WorkflowEngine) transform(content domain.ProcessedContent, a domain.TransformAction) (domain.ProcessedContent, error) {
	if a.Template == "" || e.templates == nil {
		return content, nil
	}

	rendered, found, err := e.templates.Render(a.Template, content)
	if err != nil {
		return domain.ProcessedContent{}, fmt.Errorf("render template %q: %w", a.Template, err)
	}
	if !found {
		logger.Debug("Template %q not found, leaving content unchanged", a.Template)
		return content, nil
	}

	content.Content = rendered
	return content, nil
}

// Register stores wf under category, replacing any previous definition.
func (e *WorkflowEngine) Register(category string, wf domain.WorkflowDefinition) {
	wf.Actions = slices.Clone(wf.Actions)
	wf.Formatting = slices.Clone(wf.Formatting)
	wf.Trigger.ContentTypes = slices.Clone(wf.Trigger.ContentTypes)
	wf.Trigger.Conditions = slices.Clone(wf.Trigger.Conditions)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.workflows[category] = wf
}

// Get returns the workflow registered for category.
func (e *WorkflowEngine) Get(category string) (domain.WorkflowDefinition, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	wf, ok := e.workflows[category]
	if !ok {
		return domain.WorkflowDefinition{}, fmt.Errorf("%w: %s", domain.ErrNoWorkflow, category)
	}
	return wf, nil
}

// Categories returns all registered categories, sorted.
func (e *WorkflowEngine) Categories() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	categories := lo.Keys(e.workflows)
	slices.Sort(categories)
	return categories
}

// Match returns the sorted categories whose triggers fire for content.
// Matching never executes a workflow.
func (e *WorkflowEngine) Match(content domain.ProcessedContent) ([]string, error) {
	var matched []string
	for _, category := range e.Categories() {
		wf, err := e.Get(category)
		if err != nil {
			// Categories are never removed, so this cannot happen.
			continue
		}
		fires, err := TriggerFires(wf.Trigger, content)
		if err != nil {
			return nil, fmt.Errorf("workflow %q: %w", category, err)
		}
		if fires {
			matched = append(matched, category)
		}
	}
	return matched, nil
}

// TriggerFires returns true when content's type is in the trigger's content
// types and every condition matches.
func TriggerFires(trigger domain.Trigger, content domain.ProcessedContent) (bool, error) {
	if !slices.Contains(trigger.ContentTypes, content.Metadata.ContentType) {
		return false, nil
	}
	for _, cond := range trigger.Conditions {
		ok, err := EvaluateCondition(cond, content)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// EvaluateCondition tests the string value of cond.Field against cond.Value.
func EvaluateCondition(cond domain.Condition, content domain.ProcessedContent) (bool, error) {
	value := FieldValue(content, cond.Field)

	switch cond.Operator {
	case domain.OpEquals:
		return value == cond.Value, nil
	case domain.OpContains:
		return strings.Contains(value, cond.Value), nil
	case domain.OpStartsWith:
		return strings.HasPrefix(value, cond.Value), nil
	case domain.OpEndsWith:
		return strings.HasSuffix(value, cond.Value), nil
	case domain.OpRegex:
		re, err := regexp.Compile(cond.Value)
		if err != nil {
			return false, fmt.Errorf("%w: condition on %q: %w", domain.ErrInvalidInput, cond.Field, err)
		}
		return re.MatchString(value), nil
	default:
		return false, fmt.Errorf("%w: %q", domain.ErrUnsupportedOperator, cond.Operator)
	}
}

// FieldValue resolves a condition field name against content. Unknown names
// are looked up in the custom metadata; missing fields are empty.
func FieldValue(content domain.ProcessedContent, field string) string {
	meta := content.Metadata
	switch field {
	case "content":
		return content.Content
	case "title":
		return meta.Title
	case "description":
		return meta.Description
	case "category":
		return meta.Category
	case "location":
		return meta.Location
	case "contentType":
		return string(meta.ContentType)
	case "tags":
		return strings.Join(meta.Tags, ",")
	}
	if v, ok := meta.Custom[field]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}

func cloneContent(c domain.ProcessedContent) domain.ProcessedContent {
	out := c
	out.Metadata = c.Metadata.Clone()
	out.Format = slices.Clone(c.Format)
	out.Relationships = domain.DocumentGraph{
		Nodes: slices.Clone(c.Relationships.Nodes),
		Edges: slices.Clone(c.Relationships.Edges),
	}
	return out
}
