package driven

import "github.com/custodia-labs/noteflow/internal/core/domain"

// TemplateStore provides named templates for transform actions.
// Implementations may load templates from files, embed them in the binary,
// or fetch them from a remote configuration service.
type TemplateStore interface {
	// Render applies the named template to content.
	// found is false when no template with that name exists.
	Render(name string, content domain.ProcessedContent) (rendered string, found bool, err error)

	// Names returns the names of all known templates.
	Names() []string

	// Reload clears any cached templates, forcing fresh loads on next access.
	Reload()
}

// Well-known template names used by the built-in workflows.
const (
	TemplateNote         = "note"
	TemplateImage        = "image"
	TemplateMeetingNotes = "meeting-notes"
	TemplateImageNote    = "image-note"
	TemplateVideoNote    = "video-note"
)
