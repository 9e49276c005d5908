package models

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
	"github.com/custodia-labs/noteflow/internal/mocks"
)

func cloudConfig(ct domain.ContentType) domain.ModelConfig {
	return domain.ModelConfig{
		Name:        "remote-" + string(ct),
		ContentType: ct,
		Settings:    domain.ModelSettings{Endpoint: "https://models.example.com", Model: "llava"},
	}
}

func localConfig(ct domain.ContentType) domain.ModelConfig {
	return domain.ModelConfig{
		Name:        "local-" + string(ct),
		ContentType: ct,
		Settings:    domain.ModelSettings{Local: true, ModelPath: "models/local"},
	}
}

func fresh(text string) domain.AIResponse {
	return domain.AIResponse{Text: text, Confidence: 1, Source: domain.SourceFresh}
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestLoad_EveryContentType(t *testing.T) {
	for _, ct := range domain.ContentTypes() {
		t.Run(string(ct), func(t *testing.T) {
			backend, err := Load(context.Background(), localConfig(ct), Deps{})
			require.NoError(t, err)
			assert.True(t, driven.Supports(ct, backend))
		})
	}
}

func TestLoad_UnsupportedType(t *testing.T) {
	_, err := Load(context.Background(), localConfig("hologram"), Deps{})
	assert.ErrorIs(t, err, domain.ErrUnsupportedContentType)
}

func TestNewLoader(t *testing.T) {
	backend, err := NewLoader(Deps{}).Load(context.Background(), localConfig(domain.ContentTypeTable))
	require.NoError(t, err)
	assert.IsType(t, &Table{}, backend)
}

func TestRemoteFor(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)

	assert.Nil(t, remoteFor(localConfig(domain.ContentTypeText), Deps{Completer: completer}))
	assert.Nil(t, remoteFor(cloudConfig(domain.ContentTypeText), Deps{}))

	r := remoteFor(cloudConfig(domain.ContentTypeText), Deps{Completer: completer})
	require.NotNil(t, r)
	assert.Equal(t, "llava", r.model)

	cfg := cloudConfig(domain.ContentTypeText)
	cfg.Settings.Model = ""
	assert.Equal(t, cfg.Name, remoteFor(cfg, Deps{Completer: completer}).model)
}

func TestText_Local(t *testing.T) {
	backend := NewText(nil)
	ctx := context.Background()

	out, err := backend.Analyze(ctx, "keep me")
	require.NoError(t, err)
	assert.Equal(t, "keep me", out)

	meta, err := backend.ExtractMetadata(ctx, "Das ist ein ganz normaler deutscher Satz über das Wetter in Berlin heute.")
	require.NoError(t, err)
	assert.Equal(t, "de", meta["language_code"])

	meta, err = backend.ExtractMetadata(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, meta)
}

func TestText_Cloud(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	completer.EXPECT().
		ProcessRequest(gomock.Any(), gomock.Any(), domain.RequestOptions{Model: "llava"}).
		DoAndReturn(func(_ context.Context, prompt string, _ domain.RequestOptions) domain.AIResponse {
			assert.True(t, strings.HasSuffix(prompt, "long text"))
			return fresh("short")
		})

	backend, err := Load(context.Background(), cloudConfig(domain.ContentTypeText), Deps{Completer: completer})
	require.NoError(t, err)

	out, err := backend.(driven.TextBackend).Analyze(context.Background(), "long text")
	require.NoError(t, err)
	assert.Equal(t, "short", out)
}

func TestText_CloudFallbackKeepsText(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	completer.EXPECT().ProcessRequest(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.NewFallbackResponse("p"))

	backend := NewText(&remote{completer: completer, model: "m"})

	out, err := backend.Analyze(context.Background(), "original")
	require.NoError(t, err)
	assert.Equal(t, "original", out)
}

func TestImage_LocalMetadata(t *testing.T) {
	backend := NewImage(nil)
	ctx := context.Background()
	img := testPNG(t, 40, 20)

	meta, err := backend.ExtractMetadata(ctx, img)
	require.NoError(t, err)
	assert.Equal(t, "image/png", meta["mime_type"])
	assert.Equal(t, "png", meta["format"])
	assert.Equal(t, 40, meta["width"])
	assert.Equal(t, 20, meta["height"])

	desc, err := backend.Analyze(ctx, img)
	require.NoError(t, err)
	assert.Equal(t, "png image, 40x20", desc)

	text, err := backend.ExtractText(ctx, img)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestImage_UndecodableStillHasMetadata(t *testing.T) {
	backend := NewImage(nil)

	meta, err := backend.ExtractMetadata(context.Background(), []byte("plain words"))
	require.NoError(t, err)
	assert.Contains(t, meta["mime_type"], "text/plain")
	assert.NotContains(t, meta, "width")

	meta, err = backend.ExtractMetadata(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, meta["size"])
}

func TestImage_Cloud(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	completer.EXPECT().ProcessRequest(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt string, _ domain.RequestOptions) domain.AIResponse {
			assert.Contains(t, prompt, "data:image/jpeg;base64,")
			if strings.HasPrefix(prompt, "Describe") {
				return fresh("a blank canvas")
			}
			return fresh("HELLO")
		}).Times(2)

	backend := NewImage(&remote{completer: completer, model: "llava"})
	img := testPNG(t, 1024, 768)

	desc, err := backend.Analyze(context.Background(), img)
	require.NoError(t, err)
	assert.Equal(t, "a blank canvas", desc)

	text, err := backend.ExtractText(context.Background(), img)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", text)
}

func TestEncodePreview_Downsizes(t *testing.T) {
	uri, err := encodePreview(testPNG(t, 2048, 1024))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))

	_, err = encodePreview([]byte("nope"))
	assert.Error(t, err)
}

func TestAudio(t *testing.T) {
	ctx := context.Background()

	local := NewAudio(nil)
	transcript, err := local.Transcribe(ctx, []byte("RIFF....WAVE"))
	require.NoError(t, err)
	assert.Empty(t, transcript)

	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	completer.EXPECT().ProcessRequest(gomock.Any(), gomock.Any(), gomock.Any()).Return(fresh("hello there"))

	cloud := NewAudio(&remote{completer: completer, model: "whisper"})
	transcript, err = cloud.Transcribe(ctx, []byte("RIFF....WAVE"))
	require.NoError(t, err)
	assert.Equal(t, "hello there", transcript)

	meta, err := cloud.ExtractMetadata(ctx, []byte("RIFF....WAVE"))
	require.NoError(t, err)
	assert.Equal(t, 12, meta["size"])
}

func TestVideo_KeyFrames(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	completer.EXPECT().ProcessRequest(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(fresh("1. Speaker enters\n\n- Slides shown\n"))

	backend := NewVideo(&remote{completer: completer, model: "m"})

	frames, err := backend.ExtractKeyFrames(context.Background(), []byte("video-bytes"))
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, driven.Frame{Index: 0, Description: "Speaker enters"}, frames[0])
	assert.Equal(t, driven.Frame{Index: 1, Description: "Slides shown"}, frames[1])
}

func TestVideo_LocalHasNoFrames(t *testing.T) {
	frames, err := NewVideo(nil).ExtractKeyFrames(context.Background(), []byte("video"))
	require.NoError(t, err)
	assert.NotNil(t, frames)
	assert.Empty(t, frames)
}

func TestTable_Pipeline(t *testing.T) {
	backend := NewTable(nil)
	ctx := context.Background()
	csvData := []byte("name;age;city\nada;36;London\nalan;41\n")

	structure, err := backend.ExtractStructure(ctx, csvData)
	require.NoError(t, err)
	assert.Equal(t, ';', structure.Delimiter)
	assert.Equal(t, []string{"name", "age", "city"}, structure.Headers)
	assert.Len(t, structure.Rows, 2)

	data, err := backend.ExtractData(ctx, structure)
	require.NoError(t, err)
	assert.Equal(t, []map[string]string{
		{"name": "ada", "age": "36", "city": "London"},
		{"name": "alan", "age": "41", "city": ""},
	}, data.Records)

	meta, err := backend.AnalyzeContent(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 2, meta["row_count"])
	assert.Equal(t, 3, meta["column_count"])
	assert.Equal(t, []string{"age"}, meta["numeric_columns"])
}

func TestTable_TabSeparatedAndHeaders(t *testing.T) {
	structure, err := NewTable(nil).ExtractStructure(context.Background(), []byte("\xef\xbb\xbfid\t\tid\n1\t2\t3\n"))
	require.NoError(t, err)
	assert.Equal(t, '\t', structure.Delimiter)
	assert.Equal(t, []string{"id", "column_2", "id_2"}, structure.Headers)
}

func TestTable_Empty(t *testing.T) {
	_, err := NewTable(nil).ExtractStructure(context.Background(), []byte("  \n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTable_CloudSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	completer.EXPECT().ProcessRequest(gomock.Any(), gomock.Any(), gomock.Any()).Return(fresh("people and ages"))

	backend := NewTable(&remote{completer: completer, model: "m"})
	meta, err := backend.AnalyzeContent(context.Background(), driven.TableData{
		Columns: []string{"name"},
		Records: []map[string]string{{"name": "ada"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "people and ages", meta[domain.MetaDescription])
}
