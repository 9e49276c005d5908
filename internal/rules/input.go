package rules

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/noteflow/internal/core/domain"
)

// Text renders a categorizer input as the text rules score.
// Processed content contributes its title, description, tags and body.
func Text(input any) string {
	switch v := input.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case domain.ProcessedContent:
		return contentText(v)
	case *domain.ProcessedContent:
		if v == nil {
			return ""
		}
		return contentText(*v)
	case domain.ProcessedDocument:
		return contentText(v.ToProcessedContent())
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}

func contentText(c domain.ProcessedContent) string {
	parts := make([]string, 0, 4)
	for _, s := range []string{c.Metadata.Title, c.Metadata.Description, strings.Join(c.Metadata.Tags, " "), c.Content} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}
