package models

import (
	"fmt"
	"time"
)

// Period is an inclusive [Start, End] date range.
type Period struct {
	Start Date
	End   Date
}

// NewPeriod builds a validated period.
func NewPeriod(start, end Date) (Period, error) {
	p := Period{Start: start, End: end}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// Validate checks that both bounds are set and Start is not after End.
func (p Period) Validate() error {
	if p.Start.IsZero() {
		return &ValidationError{Field: "start", Reason: "must be set"}
	}
	if p.End.IsZero() {
		return &ValidationError{Field: "end", Reason: "must be set"}
	}
	if p.Start.After(p.End) {
		return &InvalidPeriodError{Start: p.Start, End: p.End}
	}
	return nil
}

// Contains reports whether d falls inside the period, bounds included.
func (p Period) Contains(d Date) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

// Days returns the number of calendar days covered by the period.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start.Time).Hours()/24) + 1
}

func (p Period) String() string {
	return fmt.Sprintf("%s..%s", p.Start, p.End)
}

// MonthPeriod returns the whole calendar month, ending on its real last day.
func MonthPeriod(year int, month time.Month) Period {
	return Period{
		Start: NewDate(year, month, 1),
		End:   NewDate(year, month, DaysIn(year, month)),
	}
}

// ParseMonth parses YYYY-MM into the month's inclusive period.
func ParseMonth(s string) (Period, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return Period{}, &ValidationError{Field: "month", Reason: fmt.Sprintf("%q is not a YYYY-MM month", s)}
	}
	return MonthPeriod(t.Year(), t.Month()), nil
}

// MonthSpan resolves a day range inside one month. toDay is clamped to the month's
// length, so a February request for days 1..31 covers 1..28 (or 29).
func MonthSpan(year int, month time.Month, fromDay, toDay int) (Period, error) {
	last := DaysIn(year, month)
	if fromDay < 1 || fromDay > last {
		return Period{}, &ValidationError{Field: "from_day", Reason: fmt.Sprintf("must be between 1 and %d", last)}
	}
	if toDay > last {
		toDay = last
	}
	return NewPeriod(NewDate(year, month, fromDay), NewDate(year, month, toDay))
}
