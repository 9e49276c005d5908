package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/noteflow/internal/adapters/driven/config/file"
	"github.com/custodia-labs/noteflow/internal/adapters/driven/models"
	"github.com/custodia-labs/noteflow/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/services"
	"github.com/custodia-labs/noteflow/internal/postprocessors/chunker"
	"github.com/custodia-labs/noteflow/internal/postprocessors/graph"
	"github.com/custodia-labs/noteflow/internal/rules"
)

// newTestPorts wires real services over local backends and an in-memory store.
func newTestPorts(t *testing.T) *Ports {
	t.Helper()

	templates, err := file.NewTemplateStore(t.TempDir())
	require.NoError(t, err)

	engine := services.NewWorkflowEngine(templates)
	engine.Register("notes", domain.WorkflowDefinition{
		Trigger: domain.Trigger{ContentTypes: []domain.ContentType{domain.ContentTypeText}},
		Actions: []domain.Action{
			domain.CategorizeAction{Category: "notes"},
			domain.TagAction{Tags: []string{"note"}},
		},
	})

	registry := services.NewModelRegistry(models.NewLoader(models.Deps{}))
	for _, ct := range []domain.ContentType{domain.ContentTypeText, domain.ContentTypeTable} {
		require.NoError(t, registry.RegisterModelConfig(ct, domain.ModelConfig{
			Name:        "local-" + ct.String(),
			ContentType: ct,
			Settings:    domain.ModelSettings{Local: true},
		}))
	}

	processor := services.NewContentProcessor(registry, engine, chunker.NewSemantic(), graph.New())

	categorizer := services.NewCategorizer(rules.FuncRule{
		Cat: domain.Category{ID: "meetings", Name: "Meetings"},
		Fn: func(_ context.Context, input any) (float64, error) {
			if strings.Contains(rules.Text(input), "agenda") {
				return 0.9, nil
			}
			return 0, nil
		},
	})

	return &Ports{
		Processor:   processor,
		Workflows:   engine,
		Categorizer: categorizer,
		Records:     services.NewRecordService(memory.NewRecordStore()),
	}
}

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

// failingRecords is a driving.RecordService whose calls all fail.
type failingRecords struct {
	err error
}

func (f failingRecords) Index(_ context.Context, _ string, _ domain.ProcessedDocument) (string, error) {
	return "", f.err
}

func (f failingRecords) Search(_ context.Context, _ string, _ int, _ domain.RecordFilter) ([]domain.Record, error) {
	return nil, f.err
}
