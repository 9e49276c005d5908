package chunker

import (
	"strings"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.Chunker = (*Semantic)(nil)

// Semantic splits text on markdown headings and blank lines, merges short
// paragraphs of the same section up to the chunk size, and windows oversized
// paragraphs with overlap.
type Semantic struct {
	chunkSize int
	overlap   int
}

// NewSemantic creates a semantic chunker with the given options.
func NewSemantic(opts ...Option) *Semantic {
	o := buildOptions(opts)
	return &Semantic{chunkSize: o.chunkSize, overlap: o.overlap}
}

// Name returns the chunker name.
func (s *Semantic) Name() string {
	return "semantic"
}

type block struct {
	heading string
	text    string
}

// Chunk splits text into semantically coherent chunks in document order.
// Text with no non-blank content yields a single chunk holding the input.
func (s *Semantic) Chunk(text string) []domain.SemanticChunk {
	blocks := splitBlocks(text)
	if len(blocks) == 0 {
		return []domain.SemanticChunk{newChunk(text, 0, "")}
	}

	var chunks []domain.SemanticChunk
	var buf strings.Builder
	heading := ""

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		chunks = append(chunks, newChunk(buf.String(), len(chunks), heading))
		buf.Reset()
	}

	for _, b := range blocks {
		if b.heading != heading {
			flush()
			heading = b.heading
		}

		size := len([]rune(b.text))
		if size > s.chunkSize {
			flush()
			for _, part := range window([]rune(b.text), s.chunkSize, s.overlap) {
				chunks = append(chunks, newChunk(part, len(chunks), heading))
			}
			continue
		}

		if buf.Len() > 0 && len([]rune(buf.String()))+2+size > s.chunkSize {
			flush()
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(b.text)
	}
	flush()

	return chunks
}

// splitBlocks breaks text into paragraphs. A heading line starts a new
// section and is kept as its own paragraph so chunks carry their heading.
func splitBlocks(text string) []block {
	var blocks []block
	var para []string
	heading := ""

	emit := func() {
		if len(para) == 0 {
			return
		}
		blocks = append(blocks, block{heading: heading, text: strings.Join(para, "\n")})
		para = nil
	}

	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			emit()
		case Heading(trimmed) != "":
			emit()
			heading = Heading(trimmed)
			para = append(para, trimmed)
			emit()
		default:
			para = append(para, strings.TrimRight(line, " \t"))
		}
	}
	emit()

	return blocks
}

// Heading returns the title of a markdown ATX heading line, or "" if line is
// not a heading.
func Heading(line string) string {
	line = strings.TrimSpace(line)
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return ""
	}
	rest := line[level:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return ""
	}
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(rest), "#"))
}
