package app

import (
	"fmt"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
	"github.com/custodia-labs/noteflow/internal/logger"
	"github.com/custodia-labs/noteflow/internal/rules"
)

// CategorySpec describes one category and how it is scored.
type CategorySpec struct {
	Category domain.Category
	Keywords []string
	// AI adds a model-scored rule when a cloud endpoint is configured.
	AI bool
}

// DefaultCategories are used when config.toml lists no rules.categories.
func DefaultCategories() []CategorySpec {
	return []CategorySpec{
		{
			Category: domain.Category{ID: "notes", Name: "Notes", Description: "Personal notes and ideas"},
			Keywords: []string{"note", "idea", "todo"},
		},
		{
			Category: domain.Category{ID: "meetings", Name: "Meetings", Description: "Meeting notes and agendas"},
			Keywords: []string{"meeting", "agenda", "attendees", "action items"},
		},
		{
			Category: domain.Category{ID: "images", Name: "Images", Description: "Screenshots and photos"},
			Keywords: []string{"image", "screenshot", "photo"},
		},
		{
			Category: domain.Category{ID: "recordings", Name: "Recordings", Description: "Audio and video transcripts"},
			Keywords: []string{"recording", "transcript", "video", "audio"},
		},
	}
}

// CategorySpecs reads category rules from store:
//
//	[rules]
//	categories = ["projects"]
//	[rules.projects]
//	name = "Projects"
//	keywords = ["milestone", "roadmap"]
//	ai = true
func CategorySpecs(store driven.ConfigStore) []CategorySpec {
	ids := store.GetStringSlice("rules.categories")
	if len(ids) == 0 {
		return DefaultCategories()
	}

	specs := make([]CategorySpec, 0, len(ids))
	for _, id := range ids {
		prefix := "rules." + id + "."
		name := store.GetString(prefix + "name")
		if name == "" {
			name = id
		}
		specs = append(specs, CategorySpec{
			Category: domain.Category{
				ID:          id,
				Name:        name,
				Description: store.GetString(prefix + "description"),
			},
			Keywords: store.GetStringSlice(prefix + "keywords"),
			AI:       store.GetBool(prefix + "ai"),
		})
	}
	return specs
}

// registerRules adds a keyword rule per category and, when completer is set,
// an AI rule for categories that ask for one.
func (a *App) registerRules(completer driven.Completer) error {
	for _, spec := range CategorySpecs(a.Config) {
		if len(spec.Keywords) > 0 {
			rule, err := rules.NewKeywordRule(spec.Category, spec.Keywords...)
			if err != nil {
				return fmt.Errorf("category %q: %w", spec.Category.ID, err)
			}
			a.Categorizer.AddRule(rule)
		}
		if spec.AI {
			if completer == nil {
				logger.Warn("category %q wants AI scoring but no AI endpoint is configured", spec.Category.ID)
				continue
			}
			a.Categorizer.AddRule(rules.NewAIRule(spec.Category, completer, domain.RequestOptions{}))
		}
	}
	return nil
}
