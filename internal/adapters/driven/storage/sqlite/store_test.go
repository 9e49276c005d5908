package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/noteflow/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	return store
}

func testRecord(id, content string) domain.Record {
	return domain.Record{
		ID:      id,
		URI:     "file:///notes/" + id + ".md",
		Content: content,
		Metadata: domain.DocumentMetadata{
			Title:       "Note " + id,
			Category:    "notes",
			Tags:        []string{"inbox"},
			ContentType: domain.ContentTypeText,
			Created:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
			Custom:      map[string]any{"word_count": float64(3)},
		},
		Graph: domain.DocumentGraph{
			Nodes: []domain.SemanticChunk{{Content: content}},
			Edges: []domain.Edge{},
		},
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "records.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Index(ctx, testRecord("a", "persisted body")))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "persisted body", got.Content)

	var versions int
	require.NoError(t, reopened.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&versions))
	assert.Equal(t, 1, versions)
}

func TestStore_IndexAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	want := testRecord("rec-1", "hello world")

	require.NoError(t, store.Index(ctx, want))

	got, err := store.Get(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestStore_Index_Upsert(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Index(ctx, testRecord("rec-1", "first")))
	require.NoError(t, store.Index(ctx, testRecord("rec-1", "second")))

	got, err := store.Get(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Content)
}

func TestStore_Index_RequiresID(t *testing.T) {
	store := setupTestStore(t)

	err := store.Index(context.Background(), domain.Record{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_Get_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Search(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	release := testRecord("rec-1", "release notes: the release ships friday")
	photo := testRecord("rec-2", "whiteboard photo from the release retro")
	photo.Metadata.Category = "images"
	photo.Metadata.ContentType = domain.ContentTypeImage
	photo.Metadata.Tags = []string{"retro"}
	other := testRecord("rec-3", "groceries: 100% organic_milk")

	for _, r := range []domain.Record{release, photo, other} {
		require.NoError(t, store.Index(ctx, r))
	}

	t.Run("ranked", func(t *testing.T) {
		results, err := store.Search(ctx, "Release", 10, domain.RecordFilter{})
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "rec-1", results[0].ID)
		assert.Equal(t, 2.0, results[0].Score)
		assert.Equal(t, "rec-2", results[1].ID)
	})

	t.Run("category filter", func(t *testing.T) {
		results, err := store.Search(ctx, "release", 10, domain.RecordFilter{Category: "images"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "rec-2", results[0].ID)
	})

	t.Run("tag filter", func(t *testing.T) {
		results, err := store.Search(ctx, "", 10, domain.RecordFilter{Tag: "retro"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "rec-2", results[0].ID)
	})

	t.Run("content type filter", func(t *testing.T) {
		results, err := store.Search(ctx, "", 0, domain.RecordFilter{ContentType: domain.ContentTypeText})
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("like wildcards are literal", func(t *testing.T) {
		results, err := store.Search(ctx, "100%", 10, domain.RecordFilter{})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "rec-3", results[0].ID)

		results, err = store.Search(ctx, "s_i", 10, domain.RecordFilter{})
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("limit", func(t *testing.T) {
		results, err := store.Search(ctx, "", 1, domain.RecordFilter{})
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})
}
