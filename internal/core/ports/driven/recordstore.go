package driven

import (
	"context"

	"github.com/custodia-labs/noteflow/internal/core/domain"
)

// RecordStore is the storage collaborator that processed documents are handed to.
// Backed by SQLite, a Bluge index, or memory.
type RecordStore interface {
	// Index stores or replaces a record.
	Index(ctx context.Context, record domain.Record) error

	// Search returns up to limit records matching query and filter, best first.
	Search(ctx context.Context, query string, limit int, filter domain.RecordFilter) ([]domain.Record, error)

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (*domain.Record, error)

	// Close releases resources.
	Close() error
}
