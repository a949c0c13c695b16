// Package penalty computes the final score for one submission given the
// active grading policy. The calculation is pure and branches in a fixed
// order: grace period, non-submission, minimum score, then the linear
// late penalty.
package penalty

import (
	"math"
	"time"

	"github.com/notafinal/notafinal/internal/domain/policy"
)

// Status labels attached to every assessment.
const (
	StatusOnTime       = "On time"
	StatusNotSubmitted = "Not submitted"
	StatusMinimumScore = "Minimum score"
	StatusLate         = "Late"
	StatusMaxDelay     = "Maximum delay"
)

// Exemption bands, on the original 0-10 grading scale. A score at or below
// nonSubmissionMax is treated as a non-submission; a score inside
// [minimumScoreLow, minimumScoreHigh] is a pass floor. Neither is penalized.
const (
	nonSubmissionMax = 0.5
	minimumScoreLow  = 9.5
	minimumScoreHigh = 10.5
)

// Assessment is the outcome of scoring one submission.
type Assessment struct {
	FinalScore      int     // rounded, in [0, 100]
	DiscountPercent float64 // percentage points, 2 decimals
	DiscountAmount  float64 // score points deducted, 2 decimals
	MinutesLate     int     // capped at the policy window
	Status          string
}

// Assess applies the policy to one submission. The grace boundary is the
// policy start time on the submission's own calendar day; lateness is
// measured from there and capped at the window, while the status threshold
// uses the uncapped value, so "Maximum delay" begins one minute past the
// window.
func Assess(score float64, submittedAt time.Time, pol policy.Policy) Assessment {
	grace := pol.Start.OnDay(submittedAt)

	if !submittedAt.After(grace) {
		return exempt(score, StatusOnTime)
	}
	if score <= nonSubmissionMax {
		return exempt(score, StatusNotSubmitted)
	}
	if score >= minimumScoreLow && score <= minimumScoreHigh {
		return exempt(score, StatusMinimumScore)
	}

	minutesLate := int(submittedAt.Sub(grace) / time.Minute)
	capped := minutesLate
	if capped > pol.WindowMinutes {
		capped = pol.WindowMinutes
	}

	fraction := float64(capped) * (pol.MaxPercent / 100 / float64(pol.WindowMinutes))
	discount := score * fraction

	status := StatusLate
	if minutesLate > pol.WindowMinutes {
		status = StatusMaxDelay
	}

	return Assessment{
		FinalScore:      roundScore(score - discount),
		DiscountPercent: round2(fraction * 100),
		DiscountAmount:  round2(discount),
		MinutesLate:     capped,
		Status:          status,
	}
}

// exempt builds an assessment that carries the score through unpenalized.
func exempt(score float64, status string) Assessment {
	return Assessment{
		FinalScore: roundScore(score),
		Status:     status,
	}
}

// roundScore rounds half away from zero to an integer. The final score is
// rounded once, on the final value, never on intermediates.
func roundScore(v float64) int {
	return int(math.Round(v))
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
