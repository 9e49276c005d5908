package domain

// Category is a classification target.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryScore is one ranked categorisation suggestion.
type CategoryScore struct {
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
}

// CategoryThreshold is the confidence a suggestion must exceed to be returned.
const CategoryThreshold = 0.5
