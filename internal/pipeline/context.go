// Package pipeline provides a context-aware processing chain: a sequence of
// steps whose results are recorded in a bounded context history.
package pipeline

import (
	"encoding/json"
	"strings"
	"sync"
)

// DefaultMaxContextSize is the number of context records kept by default.
const DefaultMaxContextSize = 10

// ContextManager keeps the most recent context records and answers
// relevance queries over them. It is safe for concurrent use.
type ContextManager struct {
	mu      sync.RWMutex
	max     int
	records []map[string]any
}

// NewContextManager creates a manager holding at most maxSize records.
// Non-positive sizes use DefaultMaxContextSize.
func NewContextManager(maxSize int) *ContextManager {
	if maxSize <= 0 {
		maxSize = DefaultMaxContextSize
	}
	return &ContextManager{max: maxSize}
}

// UpdateContext pushes a record, dropping the oldest when full.
func (m *ContextManager) UpdateContext(record map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.records) >= m.max {
		m.records = m.records[1:]
	}
	m.records = append(m.records, record)
}

// UpdateState records a step result. Maps are stored as-is, values that
// encode to a JSON object are stored as that object, anything else is
// stored under "result".
func (m *ContextManager) UpdateState(state any) {
	m.UpdateContext(toRecord(state))
}

// GetRelevantContext merges, oldest first, every record whose JSON form
// contains any whitespace-separated query term (case-insensitive). An empty
// query matches every record.
func (m *ContextManager) GetRelevantContext(query string) map[string]any {
	terms := strings.Fields(strings.ToLower(query))

	m.mu.RLock()
	defer m.mu.RUnlock()

	merged := make(map[string]any)
	for _, record := range m.records {
		if !relevant(record, terms) {
			continue
		}
		for k, v := range record {
			merged[k] = v
		}
	}
	return merged
}

// State returns the merged view of all records.
func (m *ContextManager) State() map[string]any {
	return m.GetRelevantContext("")
}

// Len returns the number of records held.
func (m *ContextManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

func relevant(record map[string]any, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	data, err := json.Marshal(record)
	if err != nil {
		return false
	}
	text := strings.ToLower(string(data))
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func toRecord(state any) map[string]any {
	if m, ok := state.(map[string]any); ok {
		return m
	}
	if data, err := json.Marshal(state); err == nil {
		var m map[string]any
		if json.Unmarshal(data, &m) == nil && m != nil {
			return m
		}
	}
	return map[string]any{"result": state}
}
