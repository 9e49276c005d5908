package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/logger"
)

// WorkflowsFile is the default workflow definitions file name.
const WorkflowsFile = "workflows.yaml"

// workflowsDoc is the on-disk layout of workflows.yaml.
//
//	workflows:
//	  notes:
//	    trigger:
//	      contentTypes: [text]
//	    actions:
//	      - type: transform
//	        params: {template: note}
type workflowsDoc struct {
	Workflows map[string]workflowSpec `yaml:"workflows"`
}

type workflowSpec struct {
	Trigger    domain.Trigger      `yaml:"trigger"`
	Actions    []domain.ActionSpec `yaml:"actions" validate:"required,min=1,dive"`
	Formatting []domain.FormatRule `yaml:"formatting" validate:"dive"`
}

// DefaultWorkflowsPath returns ~/.noteflow/workflows.yaml.
func DefaultWorkflowsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".noteflow", WorkflowsFile), nil
}

// LoadWorkflows reads workflow definitions keyed by category.
// A missing file yields an empty set.
func LoadWorkflows(path string) (map[string]domain.WorkflowDefinition, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]domain.WorkflowDefinition{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read workflows: %w", err)
	}
	return ParseWorkflows(data)
}

// ParseWorkflows decodes and validates YAML workflow definitions.
func ParseWorkflows(data []byte) (map[string]domain.WorkflowDefinition, error) {
	var doc workflowsDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse workflows: %v", domain.ErrInvalidConfig, err)
	}

	defs := make(map[string]domain.WorkflowDefinition, len(doc.Workflows))
	for category, spec := range doc.Workflows {
		def, err := spec.definition()
		if err != nil {
			return nil, fmt.Errorf("workflow %q: %w", category, err)
		}
		if category == "" {
			return nil, fmt.Errorf("%w: workflow with empty category", domain.ErrInvalidConfig)
		}
		defs[category] = def
	}
	return defs, nil
}

func (s workflowSpec) definition() (domain.WorkflowDefinition, error) {
	if err := validate.Struct(s); err != nil {
		return domain.WorkflowDefinition{}, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	trigger := domain.Trigger{Conditions: s.Trigger.Conditions}
	for _, raw := range s.Trigger.ContentTypes {
		ct, err := domain.ParseContentType(string(raw))
		if err != nil {
			return domain.WorkflowDefinition{}, err
		}
		trigger.ContentTypes = append(trigger.ContentTypes, ct)
	}
	for _, cond := range trigger.Conditions {
		if cond.Operator != domain.OpRegex {
			continue
		}
		if _, err := regexp.Compile(cond.Value); err != nil {
			return domain.WorkflowDefinition{}, fmt.Errorf("%w: condition on %s: %v", domain.ErrInvalidConfig, cond.Field, err)
		}
	}

	actions := make([]domain.Action, 0, len(s.Actions))
	for i, spec := range s.Actions {
		action, err := domain.ParseAction(spec)
		if err != nil {
			return domain.WorkflowDefinition{}, fmt.Errorf("action %d: %w", i, err)
		}
		actions = append(actions, action)
	}

	return domain.WorkflowDefinition{
		Trigger:    trigger,
		Actions:    actions,
		Formatting: s.Formatting,
	}, nil
}

// SaveWorkflows writes definitions to path in the format LoadWorkflows reads.
func SaveWorkflows(path string, defs map[string]domain.WorkflowDefinition) error {
	doc := workflowsDoc{Workflows: make(map[string]workflowSpec, len(defs))}
	for category, def := range defs {
		spec := workflowSpec{Trigger: def.Trigger, Formatting: def.Formatting}
		for _, action := range def.Actions {
			as, err := domain.SpecFor(action)
			if err != nil {
				return fmt.Errorf("workflow %q: %w", category, err)
			}
			spec.Actions = append(spec.Actions, as)
		}
		doc.Workflows[category] = spec
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal workflows: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create workflows directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write workflows: %w", err)
	}
	return nil
}

// WatchWorkflows reloads path whenever it changes and passes the new set to
// onChange. The parent directory is watched so editors that replace the file
// are picked up. Invalid files are logged and the previous set stays active.
// The watcher stops when ctx is cancelled.
func WatchWorkflows(ctx context.Context, path string, onChange func(map[string]domain.WorkflowDefinition)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("create workflows directory: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target := filepath.Clean(path)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				defs, err := LoadWorkflows(path)
				if err != nil {
					logger.Warn("reload workflows from %s: %v", path, err)
					continue
				}
				logger.Info("reloaded %d workflows from %s", len(defs), path)
				onChange(defs)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("workflow watcher: %v", err)
			}
		}
	}()
	return nil
}
