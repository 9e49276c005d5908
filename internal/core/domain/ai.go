package domain

// ResponseSource tells callers where an AIResponse came from.
type ResponseSource string

const (
	// SourceFresh means the response came from a successful external call.
	SourceFresh ResponseSource = "fresh"
	// SourceCached means the response was served from the response cache.
	SourceCached ResponseSource = "cached"
	// SourceFallback means the external call failed and a degraded response was substituted.
	SourceFallback ResponseSource = "fallback"
)

// DefaultConfidence is reported when a model omits its confidence.
const DefaultConfidence = 1.0

// Fallback response values.
const (
	FallbackText       = "I apologize, but I'm unable to process your request at the moment."
	FallbackConfidence = 0.1

	// MetaFallback flags a degraded response in AIResponse.Metadata.
	MetaFallback = "fallback"
	// MetaOriginalPrompt carries the prompt of a degraded response.
	MetaOriginalPrompt = "originalPrompt"
)

// RequestOptions tunes a single AI request.
type RequestOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"maxTokens,omitempty"`
	Model       string  `json:"model,omitempty"`
}

// AIResponse is the result of an AI access call. It is always well-formed,
// even when the external call failed.
type AIResponse struct {
	Text       string         `json:"text"`
	Confidence float64        `json:"confidence"`
	Metadata   map[string]any `json:"metadata"`
	Source     ResponseSource `json:"source"`
}

// IsFallback returns true if the response is a degraded substitute.
func (r AIResponse) IsFallback() bool {
	return r.Source == SourceFallback
}

// NewFallbackResponse builds the degraded response for a failed prompt.
func NewFallbackResponse(prompt string) AIResponse {
	return AIResponse{
		Text:       FallbackText,
		Confidence: FallbackConfidence,
		Metadata: map[string]any{
			MetaFallback:       true,
			MetaOriginalPrompt: prompt,
		},
		Source: SourceFallback,
	}
}
