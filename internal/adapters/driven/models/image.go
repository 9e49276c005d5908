package models

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"

	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
	"github.com/custodia-labs/noteflow/internal/logger"
)

// Ensure Image implements the interface.
var _ driven.ImageBackend = (*Image)(nil)

// previewSize bounds the image sent to a remote model.
const previewSize = 512

// Image is the image backend.
type Image struct {
	remote *remote
}

// NewImage creates an image backend. r may be nil.
func NewImage(r *remote) *Image {
	return &Image{remote: r}
}

// Analyze describes the image. Without a remote model the description is
// derived from the image properties.
func (i *Image) Analyze(ctx context.Context, image []byte) (string, error) {
	meta, err := i.ExtractMetadata(ctx, image)
	if err != nil {
		return "", err
	}
	local := describe(meta)
	if i.remote == nil {
		return local, nil
	}

	preview, err := encodePreview(image)
	if err != nil {
		return local, nil
	}
	description, ok := i.remote.ask(ctx, "Describe this image in one paragraph.\n\n"+preview)
	if !ok {
		return local, nil
	}
	return description, nil
}

// ExtractText returns text visible in the image. Local backends return "".
func (i *Image) ExtractText(ctx context.Context, image []byte) (string, error) {
	if i.remote == nil {
		return "", nil
	}
	preview, err := encodePreview(image)
	if err != nil {
		return "", nil
	}
	text, ok := i.remote.ask(ctx, "Transcribe any text visible in this image. Reply with the text only.\n\n"+preview)
	if !ok {
		return "", nil
	}
	return text, nil
}

// ExtractMetadata returns the MIME type, size and, for decodable images,
// the dimensions. Empty input only reports its size.
func (i *Image) ExtractMetadata(_ context.Context, image []byte) (map[string]any, error) {
	if len(image) == 0 {
		return map[string]any{"size": 0}, nil
	}

	mime := mimetype.Detect(image)
	meta := map[string]any{
		"mime_type": mime.String(),
		"format":    trimDot(mime.Extension()),
		"size":      len(image),
	}

	img, err := imaging.Decode(bytes.NewReader(image))
	if err != nil {
		logger.Debug("Image decode failed (%s): %v", mime.String(), err)
		return meta, nil
	}
	bounds := img.Bounds()
	meta["width"] = bounds.Dx()
	meta["height"] = bounds.Dy()
	return meta, nil
}

// encodePreview downsizes the image and returns it as a base64 JPEG data URI.
func encodePreview(image []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(image))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	preview := imaging.Fit(img, previewSize, previewSize, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, preview, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return "", fmt.Errorf("encode preview: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func describe(meta map[string]any) string {
	w, hasW := meta["width"].(int)
	h, hasH := meta["height"].(int)
	if hasW && hasH {
		return fmt.Sprintf("%s image, %dx%d", meta["format"], w, h)
	}
	mime, ok := meta["mime_type"].(string)
	if !ok {
		return "empty image"
	}
	return fmt.Sprintf("%s file, %d bytes", mime, meta["size"])
}

func trimDot(ext string) string {
	if len(ext) > 0 && ext[0] == '.' {
		return ext[1:]
	}
	return ext
}
