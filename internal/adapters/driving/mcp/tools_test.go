package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/noteflow/internal/core/domain"
)

func TestServer_handleProcessContent(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t, newTestPorts(t))

	t.Run("processes text", func(t *testing.T) {
		_, out, err := server.handleProcessContent(ctx, nil, ProcessContentInput{
			Content:     "Standup\n\nShipped the importer.",
			ContentType: "text",
		})
		require.NoError(t, err)
		assert.Equal(t, "Standup", out.Title)
		assert.Equal(t, "text", out.ContentType)
		assert.NotZero(t, out.Chunks)
		assert.NotEmpty(t, out.Created)
	})

	t.Run("applies the category workflow", func(t *testing.T) {
		_, out, err := server.handleProcessContent(ctx, nil, ProcessContentInput{
			Content:     "Idea: offline sync",
			ContentType: "text",
			Category:    "notes",
		})
		require.NoError(t, err)
		assert.Equal(t, "notes", out.Category)
		assert.Equal(t, []string{"note"}, out.Tags)
	})

	t.Run("decodes base64 tables", func(t *testing.T) {
		_, out, err := server.handleProcessContent(ctx, nil, ProcessContentInput{
			Content:     "bmFtZSxxdHkKYXBwbGUsMwo=", // name,qty\napple,3\n
			ContentType: "table",
			Base64:      true,
		})
		require.NoError(t, err)
		assert.Equal(t, "table", out.ContentType)
		assert.Contains(t, out.Content, "apple")
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, _, err := server.handleProcessContent(ctx, nil, ProcessContentInput{
			Content: "%%%", ContentType: "text", Base64: true,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, _, err := server.handleProcessContent(ctx, nil, ProcessContentInput{Content: "x", ContentType: "hologram"})
		assert.ErrorIs(t, err, domain.ErrUnsupportedContentType)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, _, err := server.handleProcessContent(ctx, nil, ProcessContentInput{
			Content: "x", ContentType: "text", Category: "nope",
		})
		assert.ErrorIs(t, err, domain.ErrNoWorkflow)
	})
}

func TestServer_handleProcessDocument(t *testing.T) {
	server := newTestServer(t, newTestPorts(t))

	_, out, err := server.handleProcessDocument(context.Background(), nil, ProcessDocumentInput{
		Name:    "plan.md",
		Content: "# Plan\n\nFirst we design.\n\n# Build\n\nThen we build.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Plan", out.Title)
	assert.NotEmpty(t, out.Chunks)
	assert.NotNil(t, out.Edges)
}

func TestServer_handleApplyWorkflow(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t, newTestPorts(t))

	t.Run("runs actions in order", func(t *testing.T) {
		_, out, err := server.handleApplyWorkflow(ctx, nil, ApplyWorkflowInput{
			Content: ContentInput{Content: "body", Tags: []string{"a"}},
			Workflow: WorkflowInput{
				Actions: []domain.ActionSpec{
					{Type: "tag", Params: map[string]any{"tags": []any{"b", "a"}}},
					{Type: "move", Params: map[string]any{"destination": "/archive"}},
					{Type: "format", Params: map[string]any{"rules": []any{
						map[string]any{"selector": "h1", "style": map[string]any{"color": "red"}},
					}}},
				},
			},
		})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a", "b"}, out.Tags)
		assert.Equal(t, "/archive", out.Location)
		assert.Equal(t, []domain.FormatRule{{Selector: "h1", Style: map[string]string{"color": "red"}}}, out.Format)
	})

	t.Run("unknown action", func(t *testing.T) {
		_, _, err := server.handleApplyWorkflow(ctx, nil, ApplyWorkflowInput{
			Content:  ContentInput{Content: "body"},
			Workflow: WorkflowInput{Actions: []domain.ActionSpec{{Type: "explode"}}},
		})
		assert.ErrorIs(t, err, domain.ErrUnsupportedAction)
	})

	t.Run("invalid content type", func(t *testing.T) {
		_, _, err := server.handleApplyWorkflow(ctx, nil, ApplyWorkflowInput{
			Content: ContentInput{Content: "body", ContentType: "hologram"},
		})
		assert.ErrorIs(t, err, domain.ErrUnsupportedContentType)
	})
}

func TestServer_handleFormatByCategory(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t, newTestPorts(t))
	server.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	_, out, err := server.handleFormatByCategory(ctx, nil, FormatByCategoryInput{
		Content:  ContentInput{Content: "body"},
		Category: "notes",
	})
	require.NoError(t, err)
	assert.Equal(t, "notes", out.Category)
	assert.Equal(t, "2024-01-02T03:04:05Z", out.Created)

	_, _, err = server.handleFormatByCategory(ctx, nil, FormatByCategoryInput{Category: "missing"})
	assert.ErrorIs(t, err, domain.ErrNoWorkflow)
}

func TestServer_handleCategorize(t *testing.T) {
	ctx := context.Background()

	t.Run("returns suggestions", func(t *testing.T) {
		server := newTestServer(t, newTestPorts(t))
		_, out, err := server.handleCategorize(ctx, nil, CategorizeInput{Text: "today's agenda"})
		require.NoError(t, err)
		require.Len(t, out.Suggestions, 1)
		assert.Equal(t, "meetings", out.Suggestions[0].Category.ID)
	})

	t.Run("no match is an empty list", func(t *testing.T) {
		server := newTestServer(t, newTestPorts(t))
		_, out, err := server.handleCategorize(ctx, nil, CategorizeInput{Text: "groceries"})
		require.NoError(t, err)
		assert.NotNil(t, out.Suggestions)
		assert.Empty(t, out.Suggestions)
	})

	t.Run("unavailable without categorizer", func(t *testing.T) {
		ports := newTestPorts(t)
		ports.Categorizer = nil
		server := newTestServer(t, ports)
		_, _, err := server.handleCategorize(ctx, nil, CategorizeInput{Text: "x"})
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns search results", func(t *testing.T) {
		ports := newTestPorts(t)
		id, err := ports.Records.Index(ctx, "/notes/a.md", domain.ProcessedDocument{
			Content:  "the launch checklist",
			Metadata: domain.DocumentMetadata{Title: "Launch", Category: "notes", ContentType: domain.ContentTypeText},
		})
		require.NoError(t, err)
		server := newTestServer(t, ports)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "launch", ContentType: "text"})
		require.NoError(t, err)
		require.Equal(t, 1, output.Count)
		assert.Equal(t, id, output.Results[0].ID)
		assert.Equal(t, "Launch", output.Results[0].Title)
		assert.Equal(t, "/notes/a.md", output.Results[0].URI)
		assert.Positive(t, output.Results[0].Score)
	})

	t.Run("filters by category", func(t *testing.T) {
		ports := newTestPorts(t)
		_, err := ports.Records.Index(ctx, "", domain.ProcessedDocument{
			Content:  "launch",
			Metadata: domain.DocumentMetadata{Category: "work"},
		})
		require.NoError(t, err)
		server := newTestServer(t, ports)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "launch", Category: "notes"})
		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		ports := newTestPorts(t)
		ports.Records = failingRecords{err: errors.New("search failed")}
		server := newTestServer(t, ports)

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "test"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})

	t.Run("unavailable without records", func(t *testing.T) {
		ports := newTestPorts(t)
		ports.Records = nil
		server := newTestServer(t, ports)

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "test"})
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestServer_workflowsJSON(t *testing.T) {
	server := newTestServer(t, newTestPorts(t))

	data, err := server.workflowsJSON()
	require.NoError(t, err)

	var got []workflowResource
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "notes", got[0].Category)
	require.Len(t, got[0].Actions, 2)
	assert.Equal(t, "categorize", got[0].Actions[0].Type)
	assert.Equal(t, "notes", got[0].Actions[0].Params["category"])
}
