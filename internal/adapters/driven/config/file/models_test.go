package file

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/noteflow/internal/core/domain"
)

func TestModelConfigs_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	text := domain.ModelConfig{
		Name:        "llama3",
		ContentType: domain.ContentTypeText,
		Settings:    domain.ModelSettings{Local: true, ModelPath: "models/llama3"},
	}
	audio := domain.ModelConfig{
		Name:        "whisper",
		ContentType: domain.ContentTypeAudio,
		Settings:    domain.ModelSettings{Endpoint: "https://models.example.com/complete", Model: "whisper-1"},
	}
	require.NoError(t, SaveModelConfig(store, audio))
	require.NoError(t, SaveModelConfig(store, text))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)

	configs, err := ModelConfigs(reopened)
	require.NoError(t, err)
	assert.Equal(t, []domain.ModelConfig{text, audio}, configs)
}

func TestModelConfigs_Empty(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	configs, err := ModelConfigs(store)
	require.NoError(t, err)
	assert.Empty(t, configs)
}

func TestModelConfigs_InvalidEndpoint(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("models.image.name", "llava"))
	require.NoError(t, store.Set("models.image.endpoint", "not a url"))

	_, err = ModelConfigs(store)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestSaveModelConfig_Validation(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = SaveModelConfig(store, domain.ModelConfig{Name: "x", ContentType: "hologram"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedContentType)

	err = SaveModelConfig(store, domain.ModelConfig{ContentType: domain.ContentTypeText})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}
