package domain

import (
	"fmt"
	"strings"
)

// ActionKind identifies a workflow action variant.
type ActionKind string

const (
	// ActionTransform rewrites content through a named template.
	ActionTransform ActionKind = "transform"
	// ActionFormat replaces the format rules.
	ActionFormat ActionKind = "format"
	// ActionCategorize sets the metadata category.
	ActionCategorize ActionKind = "categorize"
	// ActionTag adds tags to the metadata.
	ActionTag ActionKind = "tag"
	// ActionMove sets the metadata location.
	ActionMove ActionKind = "move"
)

// Action is one step of a workflow. Each kind carries its own typed parameters.
type Action interface {
	Kind() ActionKind
}

// TransformAction replaces content with the output of a named template.
type TransformAction struct {
	Template string
}

// Kind returns ActionTransform.
func (TransformAction) Kind() ActionKind { return ActionTransform }

// FormatAction replaces the content's format rules wholesale.
type FormatAction struct {
	Rules []FormatRule
}

// Kind returns ActionFormat.
func (FormatAction) Kind() ActionKind { return ActionFormat }

// CategorizeAction sets the metadata category.
type CategorizeAction struct {
	Category string
}

// Kind returns ActionCategorize.
func (CategorizeAction) Kind() ActionKind { return ActionCategorize }

// TagAction unions Tags into the metadata tags.
type TagAction struct {
	Tags []string
}

// Kind returns ActionTag.
func (TagAction) Kind() ActionKind { return ActionTag }

// MoveAction sets the metadata location.
type MoveAction struct {
	Destination string
}

// Kind returns ActionMove.
func (MoveAction) Kind() ActionKind { return ActionMove }

// ActionSpec is the serialised form of an action as found in configuration
// files and transport payloads.
type ActionSpec struct {
	Type   string         `json:"type" yaml:"type" toml:"type" validate:"required"`
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty" toml:"params"`
}

// ParseAction converts a serialised action into its typed variant.
func ParseAction(spec ActionSpec) (Action, error) {
	switch ActionKind(spec.Type) {
	case ActionTransform:
		return TransformAction{Template: paramString(spec.Params, "template")}, nil
	case ActionFormat:
		rules, err := paramRules(spec.Params, "rules")
		if err != nil {
			return nil, err
		}
		return FormatAction{Rules: rules}, nil
	case ActionCategorize:
		return CategorizeAction{Category: paramString(spec.Params, "category")}, nil
	case ActionTag:
		return TagAction{Tags: paramStrings(spec.Params, "tags")}, nil
	case ActionMove:
		return MoveAction{Destination: paramString(spec.Params, "destination")}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAction, spec.Type)
	}
}

// SpecFor converts a typed action back into its serialised form.
func SpecFor(action Action) (ActionSpec, error) {
	switch a := action.(type) {
	case TransformAction:
		return ActionSpec{Type: string(ActionTransform), Params: map[string]any{"template": a.Template}}, nil
	case FormatAction:
		return ActionSpec{Type: string(ActionFormat), Params: map[string]any{"rules": a.Rules}}, nil
	case CategorizeAction:
		return ActionSpec{Type: string(ActionCategorize), Params: map[string]any{"category": a.Category}}, nil
	case TagAction:
		return ActionSpec{Type: string(ActionTag), Params: map[string]any{"tags": a.Tags}}, nil
	case MoveAction:
		return ActionSpec{Type: string(ActionMove), Params: map[string]any{"destination": a.Destination}}, nil
	default:
		return ActionSpec{}, fmt.Errorf("%w: %T", ErrUnsupportedAction, action)
	}
}

// Operator is a condition comparison operator.
type Operator string

const (
	OpEquals     Operator = "equals"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "startsWith"
	OpEndsWith   Operator = "endsWith"
	OpRegex      Operator = "regex"
)

// Condition gates whether a workflow applies to a content instance.
type Condition struct {
	Field    string   `json:"field" yaml:"field" toml:"field" validate:"required"`
	Operator Operator `json:"operator" yaml:"operator" toml:"operator" validate:"required,oneof=equals contains startsWith endsWith regex"`
	Value    string   `json:"value" yaml:"value" toml:"value"`
}

// Trigger decides whether a workflow fires for a content instance.
type Trigger struct {
	ContentTypes []ContentType `json:"contentTypes" yaml:"contentTypes" toml:"content_types"`
	Conditions   []Condition   `json:"conditions" yaml:"conditions" toml:"conditions" validate:"dive"`
}

// WorkflowDefinition is an ordered action sequence plus the trigger gating it.
// A definition is not modified once registered.
type WorkflowDefinition struct {
	Trigger    Trigger      `json:"trigger"`
	Actions    []Action     `json:"-"`
	Formatting []FormatRule `json:"formatting,omitempty"`
}

func paramString(params map[string]any, key string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

// paramStrings handles []string and the []any produced by YAML/TOML/JSON decoding.
func paramStrings(params map[string]any, key string) []string {
	switch v := params[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		return nil
	}
}

func paramRules(params map[string]any, key string) ([]FormatRule, error) {
	switch v := params[key].(type) {
	case nil:
		return nil, nil
	case []FormatRule:
		return append([]FormatRule(nil), v...), nil
	case []any:
		rules := make([]FormatRule, 0, len(v))
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: format rule %d is %T", ErrInvalidInput, i, item)
			}
			rule := FormatRule{Selector: paramString(m, "selector")}
			if style, ok := m["style"].(map[string]any); ok {
				rule.Style = make(map[string]string, len(style))
				for k, sv := range style {
					rule.Style[k] = fmt.Sprint(sv)
				}
			}
			rules = append(rules, rule)
		}
		return rules, nil
	default:
		return nil, fmt.Errorf("%w: rules must be a list, got %T", ErrInvalidInput, v)
	}
}
