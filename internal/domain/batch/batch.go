// Package batch drives the row validator and penalty calculator over an
// ordered sequence of raw rows, accumulating scored records and invalid-row
// counts. It reads a policy value and nothing else; callers own error
// policy for empty results.
package batch

import (
	"strings"

	"github.com/notafinal/notafinal/internal/domain/model"
	"github.com/notafinal/notafinal/internal/domain/penalty"
	"github.com/notafinal/notafinal/internal/domain/policy"
	"github.com/notafinal/notafinal/internal/domain/validate"
)

// RequiredColumns are the header names a well-formed file must carry,
// compared case-insensitively after trimming. Extra columns are ignored.
var RequiredColumns = []string{"nome", "nota", "datahora"}

// HeaderValid reports whether the required column set is present.
func HeaderValid(header []string) bool {
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		seen[strings.ToLower(strings.TrimSpace(h))] = true
	}
	for _, want := range RequiredColumns {
		if !seen[want] {
			return false
		}
	}
	return true
}

// Process validates and scores rows in input order against pol. A header
// missing a required column adds exactly one invalid increment; row
// processing still proceeds, since rows may be extractable by position.
// Rejected rows are counted and skipped, never partially emitted. The
// records slice preserves input order.
func Process(header []string, rows []model.RawRow, pol policy.Policy) model.BatchResult {
	result := model.BatchResult{
		Records:   make([]model.ScoredRecord, 0, len(rows)),
		TotalRows: len(rows),
	}

	if !HeaderValid(header) {
		result.InvalidRows++
	}

	for _, raw := range rows {
		row, err := validate.RawRow(raw)
		if err != nil {
			result.InvalidRows++
			continue
		}

		a := penalty.Assess(row.Score, row.SubmittedAt, pol)
		result.Records = append(result.Records, model.ScoredRecord{
			Name:            row.Name,
			OriginalScore:   row.Score,
			FinalScore:      a.FinalScore,
			DiscountPercent: a.DiscountPercent,
			DiscountAmount:  a.DiscountAmount,
			MinutesLate:     a.MinutesLate,
			Status:          a.Status,
			Timestamp:       row.Timestamp,
		})
	}

	result.ValidRows = len(result.Records)
	return result
}
