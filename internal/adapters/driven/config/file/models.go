package file

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
)

var validate = validator.New()

// Model configuration keys, relative to "models.<content type>".
const (
	keyModelName      = "name"
	keyModelLocal     = "local"
	keyModelPath      = "model_path"
	keyModelEndpoint  = "endpoint"
	keyModelModelName = "model"
)

func modelKey(ct domain.ContentType, field string) string {
	return "models." + string(ct) + "." + field
}

// ModelConfigs reads the model configuration of every content type that has
// a models.<type>.name entry. Configs are returned in content type order.
func ModelConfigs(store driven.ConfigStore) ([]domain.ModelConfig, error) {
	var configs []domain.ModelConfig
	for _, ct := range domain.ContentTypes() {
		name := store.GetString(modelKey(ct, keyModelName))
		if name == "" {
			continue
		}
		cfg := domain.ModelConfig{
			Name:        name,
			ContentType: ct,
			Settings: domain.ModelSettings{
				Local:     store.GetBool(modelKey(ct, keyModelLocal)),
				ModelPath: store.GetString(modelKey(ct, keyModelPath)),
				Endpoint:  store.GetString(modelKey(ct, keyModelEndpoint)),
				Model:     store.GetString(modelKey(ct, keyModelModelName)),
			},
		}
		if err := validate.Struct(cfg); err != nil {
			return nil, fmt.Errorf("%w: models.%s: %w", domain.ErrInvalidConfig, ct, err)
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// SaveModelConfig writes cfg under models.<type>.
func SaveModelConfig(store driven.ConfigStore, cfg domain.ModelConfig) error {
	if !cfg.ContentType.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedContentType, cfg.ContentType)
	}
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}

	values := map[string]any{
		keyModelName:      cfg.Name,
		keyModelLocal:     cfg.Settings.Local,
		keyModelPath:      cfg.Settings.ModelPath,
		keyModelEndpoint:  cfg.Settings.Endpoint,
		keyModelModelName: cfg.Settings.Model,
	}
	for field, v := range values {
		if err := store.Set(modelKey(cfg.ContentType, field), v); err != nil {
			return fmt.Errorf("save model config: %w", err)
		}
	}
	return nil
}
