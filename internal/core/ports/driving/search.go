package driving

import (
	"context"

	"github.com/custodia-labs/noteflow/internal/core/domain"
)

// RecordService hands processed documents to the storage collaborator and queries it.
type RecordService interface {
	// Index stores a processed document and returns its record ID.
	Index(ctx context.Context, uri string, doc domain.ProcessedDocument) (string, error)

	// Search returns ranked records.
	Search(ctx context.Context, query string, limit int, filter domain.RecordFilter) ([]domain.Record, error)
}
