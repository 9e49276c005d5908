package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
// Search scores records by query term frequency over title, description,
// tags and content.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string]domain.Record
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[string]domain.Record),
	}
}

// Index stores or replaces a record.
func (s *RecordStore) Index(_ context.Context, record domain.Record) error {
	if record.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	record.Score = 0
	s.records[record.ID] = record
	return nil
}

// Get retrieves a record by ID.
func (s *RecordStore) Get(_ context.Context, id string) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// Search returns up to limit records matching filter. An empty query matches
// every record with score 0. A limit <= 0 returns all matches.
func (s *RecordStore) Search(
	_ context.Context, query string, limit int, filter domain.RecordFilter,
) ([]domain.Record, error) {
	terms := strings.Fields(strings.ToLower(query))

	s.mu.RLock()
	var results []domain.Record
	for id := range s.records {
		record := s.records[id]
		if !filter.Matches(record) {
			continue
		}
		score := record.TermFrequency(terms)
		if len(terms) > 0 && score == 0 {
			continue
		}
		record.Score = score
		results = append(results, record)
	}
	s.mu.RUnlock()

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Close is a no-op.
func (s *RecordStore) Close() error {
	return nil
}
