// Package validate normalizes raw spreadsheet rows into typed fields,
// rejecting anything malformed. It is pure: no side effects beyond the
// returned row or error.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/notafinal/notafinal/internal/domain/model"
)

// Score bounds accepted by the validator. Values outside reject the row;
// nothing is clamped.
const (
	minScore = 0
	maxScore = 100
)

// TimestampLayout is the only accepted submission time format.
const TimestampLayout = "2006-01-02 15:04:05"

// timestampPattern enforces the literal shape (four-digit year, two digits
// everywhere else, exactly one space). The subsequent time.Parse enforces
// calendar validity on top of it.
var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)

// dangerousChars are stripped from every text field before any parsing.
var dangerousChars = strings.NewReplacer("<", "", ">", "", "'", "", `"`, "", "`", "")

// Row is a validated, normalized row ready for scoring.
type Row struct {
	Name        string
	Score       float64
	SubmittedAt time.Time
	Timestamp   string // sanitized input text, echoed into the scored record
}

// Sanitize trims surrounding whitespace and removes markup/quote characters.
func Sanitize(s string) string {
	return dangerousChars.Replace(strings.TrimSpace(s))
}

// Name checks a sanitized name for emptiness.
func Name(raw string) (string, error) {
	name := Sanitize(raw)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

// Score sanitizes and parses a score, requiring it to lie in [0, 100].
func Score(raw string) (float64, error) {
	s := Sanitize(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidScore)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidScore, s)
	}
	// ParseFloat accepts "NaN" and "Inf", and NaN slips past range
	// comparisons. Only finite values are gradable.
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not a finite number", ErrInvalidScore, s)
	}
	if v < minScore || v > maxScore {
		return 0, fmt.Errorf("%w: %v out of range [0, 100]", ErrInvalidScore, v)
	}
	return v, nil
}

// Timestamp sanitizes and parses a submission time. Both the literal
// pattern and calendar validity are required.
func Timestamp(raw string) (time.Time, string, error) {
	s := Sanitize(raw)
	if !timestampPattern.MatchString(s) {
		return time.Time{}, "", fmt.Errorf("%w: %q (want YYYY-MM-DD HH:MM:SS)", ErrInvalidTimestamp, s)
	}
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	return t, s, nil
}

// RawRow validates one raw row field by field. The first failing field
// rejects the whole row.
func RawRow(raw model.RawRow) (Row, error) {
	name, err := Name(raw.Name)
	if err != nil {
		return Row{}, err
	}
	score, err := Score(raw.Score)
	if err != nil {
		return Row{}, err
	}
	submittedAt, ts, err := Timestamp(raw.Timestamp)
	if err != nil {
		return Row{}, err
	}
	return Row{
		Name:        name,
		Score:       score,
		SubmittedAt: submittedAt,
		Timestamp:   ts,
	}, nil
}
