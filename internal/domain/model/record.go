// Package model contains domain models passed between layers.
package model

// RawRow is one spreadsheet row as it arrives from the ingestion layer,
// before any validation. All three fields are free text.
type RawRow struct {
	Name      string // student name, column "nome"
	Score     string // score text, column "nota"
	Timestamp string // submission time text, column "datahora"
}

// ScoredRecord is the outcome of validating and scoring one row.
type ScoredRecord struct {
	Name            string  `json:"name"`
	OriginalScore   float64 `json:"original_score"`
	FinalScore      int     `json:"final_score"`
	DiscountPercent float64 `json:"discount_percent"`
	DiscountAmount  float64 `json:"discount_amount"`
	MinutesLate     int     `json:"minutes_late"`
	Status          string  `json:"status"`
	Timestamp       string  `json:"timestamp"` // validated input echoed back verbatim
}

// ScoreSummary condenses the final scores of a batch's valid records.
type ScoreSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// BatchResult aggregates one batch run. Records preserve input order and
// contain only rows that survived validation; InvalidRows counts rejected
// rows plus one extra increment when the header itself was malformed.
type BatchResult struct {
	Records     []ScoredRecord `json:"records"`
	TotalRows   int            `json:"total_rows"`
	ValidRows   int            `json:"valid_rows"`
	InvalidRows int            `json:"invalid_rows"`
}
