package domain

import (
	"fmt"
	"time"

	"github.com/vitalis-hms/clinic_ledger_app/internal/apperrors"
)

// Period is an immutable closed date range used as a query parameter for
// reporting windows. Both bounds are inclusive.
type Period struct {
	start time.Time
	end   time.Time
}

// NewPeriod creates a Period from two instants.
func NewPeriod(start, end time.Time) (Period, error) {
	if start.IsZero() || end.IsZero() {
		return Period{}, fmt.Errorf("start and end dates are required: %w", apperrors.ErrInvalidPeriod)
	}
	if start.After(end) {
		return Period{}, fmt.Errorf("start date %s is after end date %s: %w",
			start.Format(time.RFC3339), end.Format(time.RFC3339), apperrors.ErrInvalidPeriod)
	}
	return Period{start: start, end: end}, nil
}

// CurrentMonth returns the period covering the calendar month of now.
func CurrentMonth(now time.Time) Period {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return Period{start: start, end: end}
}

// PreviousMonth returns the period covering the calendar month before now.
func PreviousMonth(now time.Time) Period {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return Period{start: start, end: end}
}

// CurrentYear returns the period covering the calendar year of now.
func CurrentYear(now time.Time) Period {
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	return Period{start: start, end: end}
}

// Start returns the inclusive lower bound.
func (p Period) Start() time.Time {
	return p.start
}

// End returns the inclusive upper bound.
func (p Period) End() time.Time {
	return p.end
}

// DurationInDays returns the number of whole days spanned by the period.
func (p Period) DurationInDays() int {
	return int(p.end.Sub(p.start).Hours() / 24)
}

// Contains reports whether t falls inside the period, bounds included.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.start) && !t.After(p.end)
}

// Overlaps reports whether the two closed intervals intersect. The test is
// symmetric: p.Overlaps(other) == other.Overlaps(p).
func (p Period) Overlaps(other Period) bool {
	return !p.start.After(other.end) && !other.start.After(p.end)
}

// Equals reports whether both bounds match exactly.
func (p Period) Equals(other Period) bool {
	return p.start.Equal(other.start) && p.end.Equal(other.end)
}
