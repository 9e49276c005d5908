package domain

// ModelSettings holds backend-specific settings for a model.
// A model is either local (loaded from ModelPath) or cloud (served at Endpoint).
type ModelSettings struct {
	// Local selects an on-device backend.
	Local bool `json:"local" toml:"local"`

	// ModelPath is the on-disk model location for local backends.
	ModelPath string `json:"modelPath,omitempty" toml:"model_path"`

	// Endpoint is the inference URL for cloud backends.
	Endpoint string `json:"endpoint,omitempty" toml:"endpoint" validate:"omitempty,url"`

	// Model is the remote model name sent with each request.
	Model string `json:"model,omitempty" toml:"model"`
}

// IsCloud returns true if requests should go through the AI access service.
func (s ModelSettings) IsCloud() bool {
	return !s.Local && s.Endpoint != ""
}

// ModelConfig configures the backend for one content type.
// Registering a config for a type replaces the previous config but does not
// evict an already-loaded backend.
type ModelConfig struct {
	Name        string        `json:"name" toml:"name" validate:"required"`
	ContentType ContentType   `json:"contentType" toml:"content_type" validate:"required"`
	Settings    ModelSettings `json:"settings" toml:"settings"`
}
