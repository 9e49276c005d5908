package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_CreatesNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("chunker.name", "fixed"))

	_, err = os.Stat(filepath.Join(dir, "config.toml"))
	assert.NoError(t, err)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("chunker.name", "semantic"))
	require.NoError(t, store.Set("chunker.chunk_size", 800))
	require.NoError(t, store.Set("graph.similarity_threshold", 0.4))
	require.NoError(t, store.Set("ai.enabled", true))
	require.NoError(t, store.Set("workflows.disabled", []string{"images"}))

	assert.Equal(t, "semantic", store.GetString("chunker.name"))
	assert.Equal(t, 800, store.GetInt("chunker.chunk_size"))
	assert.InDelta(t, 0.4, store.GetFloat("graph.similarity_threshold"), 1e-9)
	assert.InDelta(t, 800.0, store.GetFloat("chunker.chunk_size"), 1e-9)
	assert.True(t, store.GetBool("ai.enabled"))
	assert.Equal(t, []string{"images"}, store.GetStringSlice("workflows.disabled"))

	// Wrong types fall back to zero values.
	assert.Empty(t, store.GetString("chunker.chunk_size"))
	assert.Zero(t, store.GetInt("chunker.name"))
	assert.Zero(t, store.GetFloat("chunker.name"))
	assert.False(t, store.GetBool("chunker.name"))
	assert.Nil(t, store.GetStringSlice("chunker.name"))
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	val, ok := store.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Persistence_NestedTables(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("models.text.name", "llama3"))
	require.NoError(t, store1.Set("models.text.local", true))
	require.NoError(t, store1.Set("models.image.name", "llava"))
	require.NoError(t, store1.Set("store", "sqlite"))

	data, err := os.ReadFile(store1.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[models.text]")

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "llama3", store2.GetString("models.text.name"))
	assert.True(t, store2.GetBool("models.text.local"))
	assert.Equal(t, "llava", store2.GetString("models.image.name"))
	assert.Equal(t, "sqlite", store2.GetString("store"))
}

func TestConfigStore_LoadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
store = "bluge"

[chunker]
name = "fixed"
chunk_size = 500

[models.audio]
name = "whisper"
endpoint = "https://models.example.com/v1/complete"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "bluge", store.GetString("store"))
	assert.Equal(t, "fixed", store.GetString("chunker.name"))
	assert.Equal(t, 500, store.GetInt("chunker.chunk_size"))
	assert.Equal(t, "whisper", store.GetString("models.audio.name"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("test", "value"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("any_key")
	assert.False(t, ok)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[[[not toml"), 0600))

	_, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetFloat(key)
			_, _ = store.Get(key)
		}(i)
	}
	wg.Wait()
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"a.b.c": 1,
		"a.d":   "x",
		"e":     true,
	})

	assert.Equal(t, map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": 1},
			"d": "x",
		},
		"e": true,
	}, nested)
	assert.Equal(t, map[string]any{"a.b.c": 1, "a.d": "x", "e": true}, flattenMap(nested, ""))
}
