package models

import (
	"context"
	"strings"

	"github.com/abadojack/whatlanggo"

	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
)

// Ensure Text implements the interface.
var _ driven.TextBackend = (*Text)(nil)

// Text is the text backend. Analyze summarises through the remote model when
// one is configured and otherwise returns the text unchanged.
type Text struct {
	remote *remote
}

// NewText creates a text backend. r may be nil.
func NewText(r *remote) *Text {
	return &Text{remote: r}
}

// Analyze returns a summary of text.
func (t *Text) Analyze(ctx context.Context, text string) (string, error) {
	if t.remote == nil || strings.TrimSpace(text) == "" {
		return text, nil
	}
	summary, ok := t.remote.ask(ctx, "Summarize the following text:\n\n"+text)
	if !ok {
		return text, nil
	}
	return summary, nil
}

// ExtractMetadata detects the language of text.
func (t *Text) ExtractMetadata(_ context.Context, text string) (map[string]any, error) {
	meta := map[string]any{}
	if strings.TrimSpace(text) == "" {
		return meta, nil
	}

	info := whatlanggo.Detect(text)
	meta["language_code"] = info.Lang.Iso6391()
	meta["language_confidence"] = info.Confidence
	return meta, nil
}
