// Package series generates contiguous day-by-day activity sequences for
// yearly, monthly and weekly periods.
package series

import (
	"fmt"
	"time"
)

// Kind is the layout a period belongs to.
type Kind int

const (
	Yearly Kind = iota
	Monthly
	Weekly
)

// WeekLength is the fixed span of a weekly period. It is not aligned to
// calendar weeks.
const WeekLength = 7

var kindNames = map[Kind]string{
	Yearly:  "yearly",
	Monthly: "monthly",
	Weekly:  "weekly",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses "yearly", "monthly" or "weekly".
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown period kind %q", s)
}

// Period selects the inclusive date range of a generated series.
type Period struct {
	Kind   Kind
	Anchor time.Time
}

// NewPeriod truncates anchor to its calendar date in UTC.
func NewPeriod(kind Kind, anchor time.Time) Period {
	return Period{Kind: kind, Anchor: Date(anchor.Year(), anchor.Month(), anchor.Day())}
}

// YearlyPeriod covers Jan 1 through Dec 31 of year.
func YearlyPeriod(year int) Period {
	return Period{Kind: Yearly, Anchor: Date(year, time.January, 1)}
}

// MonthlyPeriod covers one month of year.
func MonthlyPeriod(year int, month time.Month) Period {
	return Period{Kind: Monthly, Anchor: Date(year, month, 1)}
}

// MonthlyPeriods returns the twelve monthly periods of year in order.
func MonthlyPeriods(year int) []Period {
	periods := make([]Period, 12)
	for i := range periods {
		periods[i] = MonthlyPeriod(year, time.Month(i+1))
	}
	return periods
}

// WeeklyPeriod covers the seven days starting Jan 1 of year.
func WeeklyPeriod(year int) Period {
	return Period{Kind: Weekly, Anchor: Date(year, time.January, 1)}
}

// Bounds returns the inclusive first and last dates of p.
func (p Period) Bounds() (start, end time.Time) {
	a := Date(p.Anchor.Year(), p.Anchor.Month(), p.Anchor.Day())
	switch p.Kind {
	case Yearly:
		return Date(a.Year(), time.January, 1), Date(a.Year(), time.December, 31)
	case Monthly:
		start = Date(a.Year(), a.Month(), 1)
		return start, start.AddDate(0, 1, -1)
	default:
		return a, a.AddDate(0, 0, WeekLength-1)
	}
}

// Len returns the number of days in p.
func (p Period) Len() int {
	start, end := p.Bounds()
	return int(end.Sub(start).Hours()/24) + 1
}

func (p Period) String() string {
	start, end := p.Bounds()
	return fmt.Sprintf("%s %s..%s", p.Kind, start.Format(time.DateOnly), end.Format(time.DateOnly))
}

// Date returns midnight UTC of the given calendar date. Out-of-range values
// are normalized the way time.Date normalizes them.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in month of year.
func DaysIn(year int, month time.Month) int {
	return Date(year, month+1, 0).Day()
}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return DaysIn(year, time.February) == 29
}
