package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/noteflow/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_HasLimitFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_FindsIndexedRecord(t *testing.T) {
	setupTestServices(t)
	path := writeFile(t, "launch.md", []byte("Launch plan\n\nThe launch is on Friday."))

	_, err := execute(t, "process", "--auto", "--index", path)
	require.NoError(t, err)
	resetFlags(rootCmd)

	out, err := execute(t, "search", "--category", "notes", "launch")
	require.NoError(t, err)
	assert.Contains(t, out, "Results:")
	assert.Contains(t, out, "[1] Launch plan")
	assert.Contains(t, out, "Source: "+path)
}

func TestSearchCmd_JSON(t *testing.T) {
	a := setupTestServices(t)
	_, err := a.Records.Index(t.Context(), "a.md", domain.ProcessedDocument{
		Content:  "budget review",
		Metadata: domain.DocumentMetadata{Title: "Budget", ContentType: domain.ContentTypeText},
	})
	require.NoError(t, err)

	out, err := execute(t, "search", "--json", "--type", "text", "budget")
	require.NoError(t, err)

	var records []domain.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Budget", records[0].Metadata.Title)
}

func TestSearchCmd_NoResults(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "search", "nothing")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_InvalidType(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "search", "--type", "hologram", "x")
	assert.ErrorIs(t, err, domain.ErrUnsupportedContentType)
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "Title", snippet("\n# Title\nbody", 50))
	assert.Equal(t, "abc...", snippet("abcdef", 3))
	assert.Equal(t, "", snippet("  \n ", 10))
}
