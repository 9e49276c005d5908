package models

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
)

// Ensure Table implements the interface.
var _ driven.TableBackend = (*Table)(nil)

// delimiters are tried in order when sniffing the header line.
var delimiters = []rune{',', '\t', ';', '|'}

// Table is the table backend. Parsing is always local; a remote model only
// adds a summary to the analysis.
type Table struct {
	remote *remote
}

// NewTable creates a table backend. r may be nil.
func NewTable(r *remote) *Table {
	return &Table{remote: r}
}

// ExtractStructure detects the delimiter and splits headers from rows.
func (t *Table) ExtractStructure(_ context.Context, table []byte) (driven.TableStructure, error) {
	table = bytes.TrimPrefix(table, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(table)) == 0 {
		return driven.TableStructure{}, fmt.Errorf("%w: empty table", domain.ErrInvalidInput)
	}

	delim := sniffDelimiter(table)
	r := csv.NewReader(bytes.NewReader(table))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return driven.TableStructure{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
		}
		rows = append(rows, rec)
	}

	return driven.TableStructure{
		Delimiter: delim,
		Headers:   headerNames(rows[0]),
		Rows:      rows[1:],
	}, nil
}

// ExtractData turns rows into records keyed by header. Short rows get ""
// for missing cells; extra cells are dropped.
func (t *Table) ExtractData(_ context.Context, structure driven.TableStructure) (driven.TableData, error) {
	records := make([]map[string]string, 0, len(structure.Rows))
	for _, row := range structure.Rows {
		rec := make(map[string]string, len(structure.Headers))
		for i, h := range structure.Headers {
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		records = append(records, rec)
	}
	return driven.TableData{
		Columns: append([]string(nil), structure.Headers...),
		Records: records,
	}, nil
}

// AnalyzeContent reports row and column counts and which columns are numeric.
func (t *Table) AnalyzeContent(ctx context.Context, data driven.TableData) (map[string]any, error) {
	numeric := lo.Filter(data.Columns, func(col string, _ int) bool {
		return isNumericColumn(data.Records, col)
	})

	meta := map[string]any{
		"row_count":       len(data.Records),
		"column_count":    len(data.Columns),
		"columns":         append([]string(nil), data.Columns...),
		"numeric_columns": numeric,
	}

	if t.remote != nil && len(data.Records) > 0 {
		prompt := fmt.Sprintf("Summarize a table with columns %s and %d rows. First row: %v",
			strings.Join(data.Columns, ", "), len(data.Records), data.Records[0])
		if summary, ok := t.remote.ask(ctx, prompt); ok {
			meta[domain.MetaDescription] = summary
		}
	}
	return meta, nil
}

func sniffDelimiter(table []byte) rune {
	line, _, _ := bytes.Cut(table, []byte("\n"))
	best, bestCount := delimiters[0], 0
	for _, d := range delimiters {
		if n := strings.Count(string(line), string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// headerNames fills blank headers and makes duplicates unique.
func headerNames(raw []string) []string {
	seen := make(map[string]int, len(raw))
	out := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = "column_" + strconv.Itoa(i+1)
		}
		if n := seen[h]; n > 0 {
			seen[h] = n + 1
			h = h + "_" + strconv.Itoa(n+1)
		} else {
			seen[h] = 1
		}
		out[i] = h
	}
	return out
}

func isNumericColumn(records []map[string]string, col string) bool {
	values := lo.FilterMap(records, func(r map[string]string, _ int) (string, bool) {
		v := strings.TrimSpace(r[col])
		return v, v != ""
	})
	if len(values) == 0 {
		return false
	}
	return lo.EveryBy(values, func(v string) bool {
		_, err := strconv.ParseFloat(v, 64)
		return err == nil
	})
}
