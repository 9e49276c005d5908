package normalisers

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Result is the text extracted from a document.
type Result struct {
	// Title is the document title, e.g. an HTML <title> or email subject.
	Title string

	// Content is the readable text.
	Content string

	// Metadata holds format-specific values such as the sender of an email.
	Metadata map[string]any
}

// Normaliser extracts text from one family of formats.
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// SupportedExtensions returns file extensions, with the leading dot,
	// used when sniffing is inconclusive.
	SupportedExtensions() []string

	// Normalise converts data to text. uri is used for fallbacks such as
	// deriving a title from the file name.
	Normalise(data []byte, uri string) (Result, error)
}

// Registry selects a normaliser by MIME type or file extension.
type Registry struct {
	byMIME map[string]Normaliser
	byExt  map[string]Normaliser
}

// NewRegistry creates a registry. Later normalisers win on conflicts.
func NewRegistry(normalisers ...Normaliser) *Registry {
	r := &Registry{
		byMIME: make(map[string]Normaliser),
		byExt:  make(map[string]Normaliser),
	}
	for _, n := range normalisers {
		for _, m := range n.SupportedMIMETypes() {
			r.byMIME[m] = n
		}
		for _, ext := range n.SupportedExtensions() {
			r.byExt[strings.ToLower(ext)] = n
		}
	}
	return r
}

// Lookup returns the normaliser for data, or false when the content is not
// in a format any normaliser handles.
func (r *Registry) Lookup(data []byte, uri string) (Normaliser, bool) {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		for mime, n := range r.byMIME {
			if m.Is(mime) {
				return n, true
			}
		}
	}
	n, ok := r.byExt[strings.ToLower(filepath.Ext(uri))]
	return n, ok
}

// Normalise converts data with the matching normaliser. The boolean is false,
// and data is left alone, when no normaliser matches.
func (r *Registry) Normalise(data []byte, uri string) (Result, bool, error) {
	n, ok := r.Lookup(data, uri)
	if !ok {
		return Result{}, false, nil
	}
	res, err := n.Normalise(data, uri)
	if err != nil {
		return Result{}, true, err
	}
	return res, true, nil
}

// TitleFromURI derives a title from a file name.
func TitleFromURI(uri string) string {
	if uri == "" {
		return ""
	}
	filename := filepath.Base(uri)
	filename = strings.TrimSuffix(filename, filepath.Ext(filename))
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}
