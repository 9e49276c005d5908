// Package bluge provides a full-text driven.RecordStore backed by a Bluge index.
//
// Title, description, tags and content are analysed for matching; category,
// tag and content type are indexed as keywords for filtering. The whole
// record is kept as a stored JSON field so search results need no second
// lookup.
package bluge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/blugelabs/bluge"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.RecordStore = (*Index)(nil)

// Field names.
const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldContent     = "content"
	fieldTag         = "tag"
	fieldCategory    = "category"
	fieldContentType = "content_type"
	fieldRecord      = "_record"

	// fieldID is the field bluge.NewDocument stores the document ID in.
	fieldID = "_id"
)

// titleBoost weights title matches over body matches.
const titleBoost = 2.0

// Index is a Bluge-backed record store.
type Index struct {
	writer *bluge.Writer
	owned  bool
}

// Open opens (or creates) an index in dir.
func Open(dir string) (*Index, error) {
	return open(bluge.DefaultConfig(dir))
}

// OpenInMemory creates an index that lives only in memory.
func OpenInMemory() (*Index, error) {
	return open(bluge.InMemoryOnlyConfig())
}

func open(cfg bluge.Config) (*Index, error) {
	writer, err := bluge.OpenWriter(cfg)
	if err != nil {
		return nil, fmt.Errorf("open bluge writer: %w", err)
	}
	return &Index{writer: writer, owned: true}, nil
}

// New wraps an existing writer. The caller keeps ownership of writer.
func New(writer *bluge.Writer) *Index {
	return &Index{writer: writer}
}

// Index stores or replaces a record.
func (x *Index) Index(_ context.Context, record domain.Record) error {
	if record.ID == "" {
		return domain.ErrInvalidInput
	}
	record.Score = 0

	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	doc := bluge.NewDocument(record.ID).
		AddField(bluge.NewTextField(fieldTitle, record.Metadata.Title)).
		AddField(bluge.NewTextField(fieldDescription, record.Metadata.Description)).
		AddField(bluge.NewTextField(fieldContent, record.Content)).
		AddField(bluge.NewKeywordField(fieldCategory, record.Metadata.Category)).
		AddField(bluge.NewKeywordField(fieldContentType, string(record.Metadata.ContentType))).
		AddField(bluge.NewStoredOnlyField(fieldRecord, raw))
	for _, tag := range record.Metadata.Tags {
		doc.AddField(bluge.NewKeywordField(fieldTag, tag))
	}

	if err := x.writer.Update(doc.ID(), doc); err != nil {
		return fmt.Errorf("index record %s: %w", record.ID, err)
	}
	return nil
}

// Get retrieves a record by ID.
func (x *Index) Get(ctx context.Context, id string) (*domain.Record, error) {
	q := bluge.NewTermQuery(id).SetField(fieldID)
	records, err := x.search(ctx, bluge.NewTopNSearch(1, q))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrNotFound
	}
	return &records[0], nil
}

// Search returns up to limit records matching query and filter, best first.
// An empty query matches every record that passes the filter. A limit <= 0
// defaults to 100.
func (x *Index) Search(
	ctx context.Context, query string, limit int, filter domain.RecordFilter,
) ([]domain.Record, error) {
	if limit <= 0 {
		limit = 100
	}
	return x.search(ctx, bluge.NewTopNSearch(limit, buildQuery(query, filter)))
}

// Close closes the writer if the index owns it.
func (x *Index) Close() error {
	if !x.owned {
		return nil
	}
	return x.writer.Close()
}

func buildQuery(query string, filter domain.RecordFilter) bluge.Query {
	q := bluge.NewBooleanQuery()
	hasClause := false

	if query = strings.TrimSpace(query); query != "" {
		text := bluge.NewBooleanQuery().SetMinShould(1).
			AddShould(bluge.NewMatchQuery(query).SetField(fieldTitle).SetBoost(titleBoost)).
			AddShould(bluge.NewMatchQuery(query).SetField(fieldDescription)).
			AddShould(bluge.NewMatchQuery(query).SetField(fieldContent))
		for _, term := range strings.Fields(query) {
			text.AddShould(bluge.NewTermQuery(term).SetField(fieldTag))
		}
		q.AddMust(text)
		hasClause = true
	}
	if filter.Category != "" {
		q.AddMust(bluge.NewTermQuery(filter.Category).SetField(fieldCategory))
		hasClause = true
	}
	if filter.ContentType != "" {
		q.AddMust(bluge.NewTermQuery(string(filter.ContentType)).SetField(fieldContentType))
		hasClause = true
	}
	if filter.Tag != "" {
		q.AddMust(bluge.NewTermQuery(filter.Tag).SetField(fieldTag))
		hasClause = true
	}

	if !hasClause {
		return bluge.NewMatchAllQuery()
	}
	return q
}

func (x *Index) search(ctx context.Context, req bluge.SearchRequest) ([]domain.Record, error) {
	reader, err := x.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("open reader: %w", err)
	}
	defer reader.Close()

	iter, err := reader.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	var records []domain.Record
	match, err := iter.Next()
	for err == nil && match != nil {
		var raw []byte
		if verr := match.VisitStoredFields(func(field string, value []byte) bool {
			if field == fieldRecord {
				raw = append([]byte(nil), value...)
				return false
			}
			return true
		}); verr != nil {
			return nil, fmt.Errorf("load stored fields: %w", verr)
		}
		if raw == nil {
			return nil, errors.New("search: match without stored record")
		}

		var record domain.Record
		if uerr := json.Unmarshal(raw, &record); uerr != nil {
			return nil, fmt.Errorf("decode record: %w", uerr)
		}
		record.Score = match.Score
		records = append(records, record)

		match, err = iter.Next()
	}
	if err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return records, nil
}
