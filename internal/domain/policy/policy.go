// Package policy defines the grading policy: the grace period end, the
// penalty cutoff and the maximum penalty percentage. The penalty window in
// minutes is always derived from the two times and never stored on its own.
package policy

import (
	"fmt"
	"regexp"
	"time"
)

// Default policy values, used until an update or a persisted snapshot
// replaces them.
const (
	DefaultStartTime  = "19:50"
	DefaultCutoffTime = "22:30"
	DefaultMaxPercent = 40.0
)

// timePattern matches "HH:MM" with hour 0-23 and minute 0-59. A single-digit
// hour is accepted, matching the loose format the config endpoint always took.
var timePattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// TimeOfDay is a wall-clock time within an arbitrary day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" into a TimeOfDay.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if !timePattern.MatchString(s) {
		return TimeOfDay{}, fmt.Errorf("%w: %q (want HH:MM)", ErrInvalidTimeFormat, s)
	}
	var t TimeOfDay
	if _, err := fmt.Sscanf(s, "%d:%d", &t.Hour, &t.Minute); err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return t, nil
}

// String renders the time back as zero-padded "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MinuteOfDay returns minutes since midnight.
func (t TimeOfDay) MinuteOfDay() int {
	return t.Hour*60 + t.Minute
}

// OnDay combines the time-of-day with the calendar date of ref, in ref's
// location, with zero seconds.
func (t TimeOfDay) OnDay(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour, t.Minute, 0, 0, ref.Location())
}

// Policy is the active grading policy. It is a plain value: the service
// hands each batch its own copy, so calculations never observe a mutation.
type Policy struct {
	Start      TimeOfDay // end of the grace period; submissions at or before it are free
	Cutoff     TimeOfDay // submissions at or after it carry the maximum penalty
	MaxPercent float64   // maximum penalty, percentage points in (0, 100)

	// WindowMinutes is Cutoff - Start in minutes of day. Derived; always
	// positive for a policy built through New.
	WindowMinutes int
}

// New validates the three editable fields and builds a Policy with the
// window recomputed. It is the only constructor; a Policy that came out of
// New always satisfies WindowMinutes > 0.
func New(startTime, cutoffTime string, maxPercent float64) (Policy, error) {
	start, err := ParseTimeOfDay(startTime)
	if err != nil {
		return Policy{}, fmt.Errorf("start time: %w", err)
	}
	cutoff, err := ParseTimeOfDay(cutoffTime)
	if err != nil {
		return Policy{}, fmt.Errorf("cutoff time: %w", err)
	}
	if maxPercent <= 0 || maxPercent >= 100 {
		return Policy{}, fmt.Errorf("%w: %v (want a number strictly between 0 and 100)", ErrInvalidPercent, maxPercent)
	}
	window := cutoff.MinuteOfDay() - start.MinuteOfDay()
	if window <= 0 {
		return Policy{}, fmt.Errorf("%w: cutoff %s must be later than start %s", ErrWindowNotPositive, cutoff, start)
	}
	return Policy{
		Start:         start,
		Cutoff:        cutoff,
		MaxPercent:    maxPercent,
		WindowMinutes: window,
	}, nil
}

// Default returns the built-in policy (19:50 to 22:30, 40%).
func Default() Policy {
	p, err := New(DefaultStartTime, DefaultCutoffTime, DefaultMaxPercent)
	if err != nil {
		// The constants are known-good; reaching here is a programming error.
		panic(err)
	}
	return p
}
