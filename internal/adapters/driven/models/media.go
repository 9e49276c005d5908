package models

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
)

// Ensure the media backends implement their interfaces.
var (
	_ driven.VideoBackend = (*Video)(nil)
	_ driven.AudioBackend = (*Audio)(nil)
)

// Audio is the audio backend. Transcripts come from the remote model.
type Audio struct {
	remote *remote
}

// NewAudio creates an audio backend. r may be nil.
func NewAudio(r *remote) *Audio {
	return &Audio{remote: r}
}

// Transcribe returns the spoken content, or "" without a remote model.
func (a *Audio) Transcribe(ctx context.Context, audio []byte) (string, error) {
	return transcribe(ctx, a.remote, "audio", audio)
}

// ExtractMetadata returns the MIME type and size.
func (a *Audio) ExtractMetadata(_ context.Context, audio []byte) (map[string]any, error) {
	return mediaMetadata(audio)
}

// Video is the video backend. Key frames and transcripts come from the
// remote model.
type Video struct {
	remote *remote
}

// NewVideo creates a video backend. r may be nil.
func NewVideo(r *remote) *Video {
	return &Video{remote: r}
}

// ExtractKeyFrames asks the remote model for one line per key moment.
// Local backends return no frames.
func (v *Video) ExtractKeyFrames(ctx context.Context, video []byte) ([]driven.Frame, error) {
	if v.remote == nil || len(video) == 0 {
		return []driven.Frame{}, nil
	}
	answer, ok := v.remote.ask(ctx, "List the key moments of this video, one per line.\n\n"+dataURI(video))
	if !ok {
		return []driven.Frame{}, nil
	}

	frames := []driven.Frame{}
	for _, line := range strings.Split(answer, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*0123456789. "))
		if line == "" {
			continue
		}
		frames = append(frames, driven.Frame{Index: len(frames), Description: line})
	}
	return frames, nil
}

// Transcribe returns the spoken content, or "" without a remote model.
func (v *Video) Transcribe(ctx context.Context, video []byte) (string, error) {
	return transcribe(ctx, v.remote, "video", video)
}

// ExtractMetadata returns the MIME type and size.
func (v *Video) ExtractMetadata(_ context.Context, video []byte) (map[string]any, error) {
	return mediaMetadata(video)
}

func transcribe(ctx context.Context, r *remote, kind string, data []byte) (string, error) {
	if r == nil || len(data) == 0 {
		return "", nil
	}
	text, ok := r.ask(ctx, fmt.Sprintf("Transcribe the speech in this %s. Reply with the transcript only.\n\n%s", kind, dataURI(data)))
	if !ok {
		return "", nil
	}
	return text, nil
}

func mediaMetadata(data []byte) (map[string]any, error) {
	if len(data) == 0 {
		return map[string]any{"size": 0}, nil
	}
	mime := mimetype.Detect(data)
	return map[string]any{
		"mime_type": mime.String(),
		"format":    trimDot(mime.Extension()),
		"size":      len(data),
	}, nil
}

func dataURI(data []byte) string {
	return "data:" + mimetype.Detect(data).String() + ";base64," + base64.StdEncoding.EncodeToString(data)
}
