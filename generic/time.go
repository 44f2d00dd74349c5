package generic

import (
	"strings"
	"time"
)

// =============================================================================
// TIME POINT - A calendar day (budgets are prorated per whole day)
// =============================================================================

// TimePoint is a calendar day normalised to midnight UTC.
type TimePoint struct {
	Time time.Time
}

// Accepted input layouts for ParseDate, tried in order.
var dateLayouts = []string{
	"20060102",
	"2006-01-02",
}

// NewTimePoint builds a TimePoint. Out-of-range days roll over like time.Date.
func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates t to its calendar day in t's own location.
func FromTime(t time.Time) TimePoint {
	return NewTimePoint(t.Year(), t.Month(), t.Day())
}

// ParseDate parses YYYYMMDD or YYYY-MM-DD.
func ParseDate(s string) (TimePoint, error) {
	value := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if len(value) != len(layout) {
			continue
		}
		if t, err := time.Parse(layout, value); err == nil {
			return FromTime(t), nil
		}
	}
	return TimePoint{}, &InvalidDateError{Input: s}
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool        { return tp.Time.Before(other.Time) }
func (tp TimePoint) Equal(other TimePoint) bool         { return tp.Time.Equal(other.Time) }
func (tp TimePoint) After(other TimePoint) bool         { return tp.Time.After(other.Time) }
func (tp TimePoint) BeforeOrEqual(other TimePoint) bool { return !tp.After(other) }
func (tp TimePoint) AfterOrEqual(other TimePoint) bool  { return !tp.Before(other) }

// Arithmetic
func (tp TimePoint) AddDays(n int) TimePoint { return TimePoint{Time: tp.Time.AddDate(0, 0, n)} }

// Properties
func (tp TimePoint) Year() int            { return tp.Time.Year() }
func (tp TimePoint) Month() time.Month    { return tp.Time.Month() }
func (tp TimePoint) Day() int             { return tp.Time.Day() }
func (tp TimePoint) YearMonth() YearMonth { return YearMonth{Year: tp.Year(), Month: tp.Month()} }

func (tp TimePoint) String() string { return tp.Time.Format("2006-01-02") }

// MarshalText renders YYYY-MM-DD in JSON and YAML.
func (tp TimePoint) MarshalText() ([]byte, error) { return []byte(tp.String()), nil }

// Compact renders the day as YYYYMMDD.
func (tp TimePoint) Compact() string { return tp.Time.Format("20060102") }

// =============================================================================
// TIME UTILITIES
// =============================================================================

// DaysBetween counts whole days from -> to; negative when to is earlier.
// Both values are UTC midnights so there is no DST drift. Unix seconds are
// used instead of Sub, which saturates past ~292 years.
func DaysBetween(from, to TimePoint) int {
	return int((to.Time.Unix() - from.Time.Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

func MinTimePoint(a, b TimePoint) TimePoint {
	if a.Before(b) {
		return a
	}
	return b
}

func MaxTimePoint(a, b TimePoint) TimePoint {
	if a.After(b) {
		return a
	}
	return b
}

func StartOfMonth(year int, month time.Month) TimePoint { return NewTimePoint(year, month, 1) }

// EndOfMonth returns the last calendar day of the month; day 0 of the next
// month normalises to it, which takes care of leap years.
func EndOfMonth(year int, month time.Month) TimePoint { return NewTimePoint(year, month+1, 0) }

// DaysInMonth returns 28, 29, 30 or 31.
func DaysInMonth(year int, month time.Month) int { return EndOfMonth(year, month).Day() }
