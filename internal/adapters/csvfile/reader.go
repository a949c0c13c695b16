// Package csvfile decodes uploaded comma-separated tables into raw rows for
// the batch aggregator. Column positions are resolved once from the header,
// case-insensitively and independent of column order; extra columns are
// ignored.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/notafinal/notafinal/internal/domain/model"
)

// Fallback positions used when a required column name is absent from the
// header. Rows may still be extractable by position; the aggregator
// separately counts the header mismatch.
const (
	posName      = 0
	posScore     = 1
	posTimestamp = 2
)

// Table is a decoded upload: the header row plus every data row mapped into
// raw fields.
type Table struct {
	Header []string
	Rows   []model.RawRow
}

// columnIndex resolves where each required field lives in a record.
type columnIndex struct {
	name      int
	score     int
	timestamp int
}

func resolveColumns(header []string) columnIndex {
	idx := columnIndex{name: posName, score: posScore, timestamp: posTimestamp}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "nome":
			idx.name = i
		case "nota":
			idx.score = i
		case "datahora":
			idx.timestamp = i
		}
	}
	return idx
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

// Decode reads a UTF-8 CSV stream with a required header row. Ragged rows
// are tolerated; missing fields arrive as empty strings and fail row
// validation downstream. Only a stream-level failure (unreadable input, no
// header at all) returns an error.
func Decode(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are a row-level concern
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, ErrEmptyFile
		}
		return Table{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	idx := resolveColumns(header)

	var rows []model.RawRow
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A malformed line is one bad row, not a dead batch.
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				rows = append(rows, model.RawRow{})
				continue
			}
			return Table{}, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		rows = append(rows, model.RawRow{
			Name:      field(record, idx.name),
			Score:     field(record, idx.score),
			Timestamp: field(record, idx.timestamp),
		})
	}

	return Table{Header: header, Rows: rows}, nil
}
