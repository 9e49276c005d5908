package domain

import "strings"

// Record is the unit handed to and returned from the storage collaborator.
type Record struct {
	// ID is the unique identifier for the record.
	ID string `json:"id"`

	// URI is the original location (file path, URL, etc).
	URI string `json:"uri,omitempty"`

	// Content is the full normalised text.
	Content string `json:"content"`

	// Metadata describes the content.
	Metadata DocumentMetadata `json:"metadata"`

	// Graph holds the chunks and their relationships.
	Graph DocumentGraph `json:"graph"`

	// Score is the relevance score when returned from a search.
	Score float64 `json:"score,omitempty"`
}

// RecordFilter narrows a record search. Empty fields match everything.
type RecordFilter struct {
	Category    string
	Tag         string
	ContentType ContentType
}

// Matches returns true if the record passes the filter.
func (f RecordFilter) Matches(r Record) bool {
	if f.Category != "" && r.Metadata.Category != f.Category {
		return false
	}
	if f.ContentType != "" && r.Metadata.ContentType != f.ContentType {
		return false
	}
	if f.Tag != "" {
		found := false
		for _, t := range r.Metadata.Tags {
			if t == f.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// TermFrequency counts how often the lowercase terms occur in the record's
// title, description, tags and content.
func (r Record) TermFrequency(terms []string) float64 {
	if len(terms) == 0 {
		return 0
	}
	text := strings.ToLower(strings.Join([]string{
		r.Metadata.Title,
		r.Metadata.Description,
		strings.Join(r.Metadata.Tags, " "),
		r.Content,
	}, " "))

	var score float64
	for _, term := range terms {
		score += float64(strings.Count(text, term))
	}
	return score
}
