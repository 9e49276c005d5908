package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
	"github.com/custodia-labs/noteflow/internal/core/ports/driving"
	"github.com/custodia-labs/noteflow/internal/logger"
)

// Ensure RecordService implements the interface.
var _ driving.RecordService = (*RecordService)(nil)

// defaultSearchLimit applies when a search does not ask for a limit.
const defaultSearchLimit = 20

// ErrNoRecordStore is returned when no storage collaborator is configured.
var ErrNoRecordStore = errors.New("record store unavailable")

// RecordService hands processed documents to the storage collaborator and
// runs searches against it.
type RecordService struct {
	store driven.RecordStore
}

// NewRecordService creates a record service. store may be nil, in which
// case every call fails with ErrNoRecordStore.
func NewRecordService(store driven.RecordStore) *RecordService {
	return &RecordService{store: store}
}

// Index stores doc under a fresh ID and returns it.
func (s *RecordService) Index(ctx context.Context, uri string, doc domain.ProcessedDocument) (string, error) {
	if s.store == nil {
		return "", ErrNoRecordStore
	}

	record := domain.Record{
		ID:       uuid.New().String(),
		URI:      uri,
		Content:  doc.Content,
		Metadata: doc.Metadata,
		Graph:    doc.Graph,
	}
	if err := s.store.Index(ctx, record); err != nil {
		return "", fmt.Errorf("index %s: %w", uri, err)
	}

	logger.Debug("Indexed %s as %s (%d chunks)", uri, record.ID, len(doc.Chunks))
	return record.ID, nil
}

// Search returns ranked records for query. A blank query returns nothing.
func (s *RecordService) Search(
	ctx context.Context, query string, limit int, filter domain.RecordFilter,
) ([]domain.Record, error) {
	if s.store == nil {
		return nil, ErrNoRecordStore
	}

	logger.Section("Record Search")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.Record{}, nil
	}

	if limit <= 0 {
		limit = defaultSearchLimit
	}
	logger.Debug("Limit: %d, filter: %+v", limit, filter)

	results, err := s.store.Search(ctx, query, limit, filter)
	if err != nil {
		logger.Warn("Search failed: %v", err)
		return nil, fmt.Errorf("search: %w", err)
	}

	logger.Info("Final results: %d", len(results))
	return results, nil
}
