package generic

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// PERIOD - Inclusive range of calendar days
// =============================================================================

// Period is the inclusive day range [Start, End]. Callers keep Start <= End;
// NewPeriod enforces it.
type Period struct {
	Start TimePoint
	End   TimePoint
}

// NewPeriod returns ErrInvalidPeriod when end is before start.
func NewPeriod(start, end TimePoint) (Period, error) {
	if end.Before(start) {
		return Period{}, fmt.Errorf("%w: %s > %s", ErrInvalidPeriod, start, end)
	}
	return Period{Start: start, End: end}, nil
}

// Days counts the days in the period, both ends included.
func (p Period) Days() int {
	return DaysBetween(p.Start, p.End) + 1
}

// Overlap returns the common sub-period, and false when the two periods
// share no day.
func (p Period) Overlap(other Period) (Period, bool) {
	start := MaxTimePoint(p.Start, other.Start)
	end := MinTimePoint(p.End, other.End)
	if start.After(end) {
		return Period{}, false
	}
	return Period{Start: start, End: end}, true
}

// OverlapDays counts the days both periods have in common.
func (p Period) OverlapDays(other Period) int {
	overlap, ok := p.Overlap(other)
	if !ok {
		return 0
	}
	return overlap.Days()
}

// Months lists every calendar month the period touches, in order.
func (p Period) Months() []YearMonth {
	var months []YearMonth
	last := p.End.YearMonth()
	for m := p.Start.YearMonth(); !last.Before(m); m = m.Next() {
		months = append(months, m)
	}
	return months
}

// SplitByMonth partitions the period into month-bounded sub-periods.
func (p Period) SplitByMonth() []Period {
	months := p.Months()
	parts := make([]Period, 0, len(months))
	for _, m := range months {
		if part, ok := p.Overlap(m.Period()); ok {
			parts = append(parts, part)
		}
	}
	return parts
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// =============================================================================
// YEAR MONTH - Identifier of a budgeted calendar month
// =============================================================================

// YearMonth identifies one calendar month. Its canonical text form is YYYYMM.
type YearMonth struct {
	Year  int
	Month time.Month
}

// NewYearMonth validates the month number.
func NewYearMonth(year int, month time.Month) (YearMonth, error) {
	if month < time.January || month > time.December || year < 1 || year > 9999 {
		return YearMonth{}, &InvalidMonthError{Input: fmt.Sprintf("%04d%02d", year, int(month))}
	}
	return YearMonth{Year: year, Month: month}, nil
}

// MustYearMonth panics on invalid input. Intended for fixtures.
func MustYearMonth(s string) YearMonth {
	ym, err := ParseYearMonth(s)
	if err != nil {
		panic(err)
	}
	return ym
}

// ParseYearMonth accepts YYYYMM or YYYY-MM.
func ParseYearMonth(s string) (YearMonth, error) {
	value := strings.ReplaceAll(strings.TrimSpace(s), "-", "")
	if len(value) != 6 {
		return YearMonth{}, &InvalidMonthError{Input: s}
	}
	year, err := strconv.Atoi(value[:4])
	if err != nil {
		return YearMonth{}, &InvalidMonthError{Input: s}
	}
	month, err := strconv.Atoi(value[4:])
	if err != nil {
		return YearMonth{}, &InvalidMonthError{Input: s}
	}
	ym, err := NewYearMonth(year, time.Month(month))
	if err != nil {
		return YearMonth{}, &InvalidMonthError{Input: s}
	}
	return ym, nil
}

func (ym YearMonth) String() string { return fmt.Sprintf("%04d%02d", ym.Year, int(ym.Month)) }

func (ym YearMonth) Start() TimePoint { return StartOfMonth(ym.Year, ym.Month) }
func (ym YearMonth) End() TimePoint   { return EndOfMonth(ym.Year, ym.Month) }
func (ym YearMonth) Days() int        { return DaysInMonth(ym.Year, ym.Month) }

// Period is the whole month, first to last day.
func (ym YearMonth) Period() Period { return Period{Start: ym.Start(), End: ym.End()} }

func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// MarshalText and UnmarshalText let YearMonth travel as "YYYYMM" in JSON and YAML.
func (ym YearMonth) MarshalText() ([]byte, error) { return []byte(ym.String()), nil }

func (ym *YearMonth) UnmarshalText(b []byte) error {
	parsed, err := ParseYearMonth(string(b))
	if err != nil {
		return err
	}
	*ym = parsed
	return nil
}

// UnmarshalJSON accepts both "202407" and 202407.
func (ym *YearMonth) UnmarshalJSON(b []byte) error {
	return ym.UnmarshalText([]byte(strings.Trim(string(b), `"`)))
}
