package file

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/samber/lo"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
	"github.com/custodia-labs/noteflow/internal/logger"
)

// Ensure TemplateStore implements the interface.
var _ driven.TemplateStore = (*TemplateStore)(nil)

// templateExt is the file extension of user templates.
const templateExt = ".tmpl"

// TemplateStore loads transform templates from user-editable files on disk.
// Templates are Go text/templates executed against the ProcessedContent being
// transformed. Files in the template directory override the embedded defaults.
//
// The store uses lazy initialisation - files are only created when first accessed,
// not in the constructor.
type TemplateStore struct {
	mu       sync.RWMutex
	dir      string
	cache    map[string]*template.Template
	initOnce sync.Once
}

// defaultTemplates contains embedded default templates.
// These are used when user files don't exist and as the initial content for new files.
var defaultTemplates = map[string]string{
	driven.TemplateNote: `# {{ default "Untitled note" .Metadata.Title }}

{{ .Content }}
{{- with .Metadata.Tags }}

Tags: {{ join . ", " }}
{{- end }}
`,

	driven.TemplateImage: `# {{ default "Image" .Metadata.Title }}

{{ with .Metadata.Description }}> {{ . }}

{{ end }}{{ .Content }}
`,

	driven.TemplateMeetingNotes: `# Meeting: {{ default "Untitled" .Metadata.Title }}

Date: {{ date .Metadata.Created }}

## Notes

{{ .Content }}
`,

	driven.TemplateImageNote: `# Screenshot {{ date .Metadata.Created }}

{{ with .Metadata.Description }}{{ . }}

{{ end }}## Extracted text

{{ .Content }}
`,

	driven.TemplateVideoNote: `# Recording {{ date .Metadata.Created }}

## Transcript

{{ .Content }}
`,
}

// templateFuncs are available to every template.
var templateFuncs = template.FuncMap{
	"join":  strings.Join,
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
	"trim":  strings.TrimSpace,
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
	"default": func(def, v string) string {
		if strings.TrimSpace(v) == "" {
			return def
		}
		return v
	},
}

// NewTemplateStore creates a new file-based template store.
// If dir is empty, defaults to ~/.noteflow/templates/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Render() call.
func NewTemplateStore(dir string) (*TemplateStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(home, ".noteflow", "templates")
	}

	return &TemplateStore{
		dir:   dir,
		cache: make(map[string]*template.Template),
	}, nil
}

// Render executes the named template against content.
// found is false when neither a file nor a default exists for name.
func (s *TemplateStore) Render(name string, content domain.ProcessedContent) (string, bool, error) {
	tmpl, err := s.load(name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", true, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, content); err != nil {
		return "", true, fmt.Errorf("render template %q: %w", name, err)
	}
	return buf.String(), true, nil
}

// Names returns the names of all default and user templates, sorted.
func (s *TemplateStore) Names() []string {
	names := lo.Keys(defaultTemplates)

	entries, err := os.ReadDir(s.dir)
	if err == nil {
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), templateExt) {
				names = append(names, strings.TrimSuffix(e.Name(), templateExt))
			}
		}
	}

	names = lo.Uniq(names)
	sort.Strings(names)
	return names
}

// Reload clears the template cache, forcing fresh loads from disk.
func (s *TemplateStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]*template.Template)
	s.mu.Unlock()
}

// Dir returns the template directory path.
func (s *TemplateStore) Dir() string {
	return s.dir
}

// load returns the parsed template for name, or an fs.ErrNotExist error.
func (s *TemplateStore) load(name string) (*template.Template, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fs.ErrNotExist
	}

	s.initOnce.Do(s.initialise)

	s.mu.RLock()
	if tmpl, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return tmpl, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O), falling back to the default.
	text, err := s.loadFromFile(name)
	if err != nil {
		def, ok := defaultTemplates[name]
		if !ok {
			return nil, fmt.Errorf("template %q: %w", name, fs.ErrNotExist)
		}
		text = def
	}

	tmpl, err := template.New(name).Funcs(templateFuncs).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template %q: %w", name, err)
	}

	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		tmpl = cached
	} else {
		s.cache[name] = tmpl
	}
	s.mu.Unlock()

	return tmpl, nil
}

// initialise creates the template directory and default files.
// Failures only log: defaults are always available from memory.
func (s *TemplateStore) initialise() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		logger.Warn("create template directory %s: %v", s.dir, err)
		return
	}

	for name, content := range defaultTemplates {
		path := filepath.Join(s.dir, name+templateExt)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				logger.Warn("create default template %s: %v", path, err)
				return
			}
		}
	}
}

func (s *TemplateStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name+templateExt))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
