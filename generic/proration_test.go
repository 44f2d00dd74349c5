/*
proration_test.go - Tests for the proration core

ORGANIZATION:
  1. Calendar primitives - parsing, days in month, overlap
  2. Proration - the reference scenarios and algebraic properties
  3. Breakdown - month walk agrees with the overlap sum
*/
package generic_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/budget-engine/generic"
)

// =============================================================================
// TEST INFRASTRUCTURE
// =============================================================================

func sampleAllocations() []generic.Allocation {
	return []generic.Allocation{
		{Month: generic.MustYearMonth("202312"), Amount: decimal.NewFromInt(310)},
		{Month: generic.MustYearMonth("202402"), Amount: decimal.NewFromInt(2900)},
		{Month: generic.MustYearMonth("202406"), Amount: decimal.NewFromInt(30000000)},
		{Month: generic.MustYearMonth("202407"), Amount: decimal.NewFromInt(3100)},
		{Month: generic.MustYearMonth("202408"), Amount: decimal.NewFromInt(31)},
		{Month: generic.MustYearMonth("202409"), Amount: decimal.NewFromInt(300000)},
	}
}

func day(t *testing.T, s string) generic.TimePoint {
	t.Helper()
	tp, err := generic.ParseDate(s)
	require.NoError(t, err)
	return tp
}

func period(t *testing.T, start, end string) generic.Period {
	t.Helper()
	p, err := generic.NewPeriod(day(t, start), day(t, end))
	require.NoError(t, err)
	return p
}

func assertDecimal(t *testing.T, expected int64, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, decimal.NewFromInt(expected).Equal(actual),
		append([]any{"expected %d, got %s", expected, actual.String()}, msgAndArgs...)...)
}

// =============================================================================
// CALENDAR PRIMITIVES
// =============================================================================

func TestParseDate_AcceptedLayouts(t *testing.T) {
	compact, err := generic.ParseDate("20240720")
	require.NoError(t, err)
	dashed, err := generic.ParseDate("2024-07-20")
	require.NoError(t, err)

	assert.True(t, compact.Equal(dashed))
	assert.Equal(t, generic.NewTimePoint(2024, time.July, 20), compact)
	assert.Equal(t, "20240720", compact.Compact())
}

func TestParseDate_RejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"", "2024072", "2024-7-20", "20240230", "20241301", "yesterday", "2024/07/20"} {
		t.Run(input, func(t *testing.T) {
			_, err := generic.ParseDate(input)
			require.Error(t, err)

			var dateErr *generic.InvalidDateError
			assert.ErrorAs(t, err, &dateErr)
			assert.ErrorIs(t, err, generic.ErrInvalidDate)
			assert.Equal(t, input, dateErr.Input)
		})
	}
}

func TestParseYearMonth(t *testing.T) {
	ym, err := generic.ParseYearMonth("202407")
	require.NoError(t, err)
	assert.Equal(t, generic.YearMonth{Year: 2024, Month: time.July}, ym)

	dashed, err := generic.ParseYearMonth("2024-07")
	require.NoError(t, err)
	assert.Equal(t, ym, dashed)

	for _, input := range []string{"202413", "202400", "2024", "abcdef", "2024-7"} {
		_, err := generic.ParseYearMonth(input)
		assert.ErrorIs(t, err, generic.ErrInvalidMonth, input)
	}
}

func TestDaysInMonth_LeapYears(t *testing.T) {
	assert.Equal(t, 29, generic.DaysInMonth(2024, time.February))
	assert.Equal(t, 28, generic.DaysInMonth(2023, time.February))
	assert.Equal(t, 28, generic.DaysInMonth(1900, time.February), "century not divisible by 400")
	assert.Equal(t, 29, generic.DaysInMonth(2000, time.February), "century divisible by 400")
	assert.Equal(t, 31, generic.DaysInMonth(2024, time.July))
	assert.Equal(t, 30, generic.DaysInMonth(2024, time.September))
	assert.Equal(t, 31, generic.DaysInMonth(2024, time.December))
}

func TestYearMonth_NextRollsOverYear(t *testing.T) {
	dec := generic.MustYearMonth("202312")
	assert.Equal(t, generic.MustYearMonth("202401"), dec.Next())
	assert.True(t, dec.Before(dec.Next()))
	assert.False(t, dec.Next().Before(dec))
}

func TestPeriod_Overlap(t *testing.T) {
	july := generic.MustYearMonth("202407").Period()

	// Partial overlap at the end of the month
	overlap, ok := period(t, "20240720", "20240805").Overlap(july)
	require.True(t, ok)
	assert.Equal(t, day(t, "20240720"), overlap.Start)
	assert.Equal(t, day(t, "20240731"), overlap.End)
	assert.Equal(t, 12, overlap.Days())

	// Touching on a single day still overlaps
	assert.Equal(t, 1, period(t, "20240731", "20240801").OverlapDays(july))

	// Disjoint
	_, ok = period(t, "20240801", "20240831").Overlap(july)
	assert.False(t, ok)
	assert.Equal(t, 0, period(t, "20240801", "20240831").OverlapDays(july))
}

func TestNewPeriod_RejectsReversedRange(t *testing.T) {
	_, err := generic.NewPeriod(day(t, "20240721"), day(t, "20240720"))
	assert.ErrorIs(t, err, generic.ErrInvalidPeriod)
}

func TestPeriod_SplitByMonth(t *testing.T) {
	parts := period(t, "20231221", "20240220").SplitByMonth()
	require.Len(t, parts, 3)

	assert.Equal(t, period(t, "20231221", "20231231"), parts[0])
	assert.Equal(t, period(t, "20240101", "20240131"), parts[1])
	assert.Equal(t, period(t, "20240201", "20240220"), parts[2])
}

// =============================================================================
// PRORATION
// =============================================================================

func TestProrate_ReferenceScenarios(t *testing.T) {
	cases := []struct {
		name     string
		start    string
		end      string
		expected int64
	}{
		// same month
		{"single day", "20240720", "20240720", 100},
		{"two days", "20240720", "20240721", 200},
		{"whole month", "20240701", "20240731", 3100},
		// cross month
		{"month boundary", "20240731", "20240801", 101},
		{"month plus two days", "20240701", "20240802", 3102},
		{"two whole months", "20240701", "20240831", 3131},
		{"into third month", "20240701", "20240901", 13131},
		{"june and july", "20240601", "20240731", 30003100},
		// missing allocations contribute nothing
		{"september then empty october", "20240901", "20241030", 300000},
		{"empty may then june", "20240501", "20240630", 30000000},
		{"only empty months", "20240411", "20240530", 0},
		{"after last allocation", "20241010", "20241111", 0},
		{"whole year", "20240101", "20241231", 30306031},
		// cross year
		{"december into january", "20231201", "20240131", 310},
		{"december through leap february", "20231221", "20240220", 2110},
	}

	allocations := sampleAllocations()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := generic.Prorate(period(t, tc.start, tc.end), allocations)
			assertDecimal(t, tc.expected, got, tc.start+".."+tc.end)
		})
	}
}

func TestProrate_SingleDayIsDailyAmount(t *testing.T) {
	// GIVEN: every allocated month in the sample
	// WHEN: querying one day inside that month
	// THEN: the result is amount / daysInMonth
	allocations := sampleAllocations()
	for _, a := range allocations {
		for d := a.Month.Start(); d.BeforeOrEqual(a.Month.End()); d = d.AddDays(1) {
			got := generic.Prorate(generic.Period{Start: d, End: d}, allocations)
			assert.True(t, a.DailyAmount().Equal(got), "%s: expected %s, got %s", d, a.DailyAmount(), got)
		}
	}
}

func TestProrate_SumDecomposition(t *testing.T) {
	// GIVEN: a query spanning several months, some without allocations
	allocations := sampleAllocations()
	query := period(t, "20231215", "20240917")

	// WHEN: summing each month-bounded piece separately
	sum := decimal.Zero
	for _, part := range query.SplitByMonth() {
		sum = sum.Add(generic.Prorate(part, allocations))
	}

	// THEN: the pieces add up to the whole
	whole := generic.Prorate(query, allocations)
	assert.True(t, whole.Equal(sum), "whole %s != sum of parts %s", whole, sum)
}

func TestProrate_OrderIndependentAndIdempotent(t *testing.T) {
	allocations := sampleAllocations()
	reversed := make([]generic.Allocation, len(allocations))
	for i, a := range allocations {
		reversed[len(allocations)-1-i] = a
	}
	query := period(t, "20231221", "20240915")

	first := generic.Prorate(query, allocations)
	assert.True(t, first.Equal(generic.Prorate(query, allocations)))
	assert.True(t, first.Equal(generic.Prorate(query, reversed)))
}

func TestProrate_NoAllocations(t *testing.T) {
	got := generic.Prorate(period(t, "20240101", "20241231"), nil)
	assert.True(t, got.IsZero())
}

func TestProrate_NonTerminatingDailyAmount(t *testing.T) {
	// 100 over a 31-day month does not divide evenly, but a whole month
	// must still reproduce the allocation exactly.
	allocations := []generic.Allocation{
		{Month: generic.MustYearMonth("202401"), Amount: decimal.NewFromInt(100)},
	}
	assertDecimal(t, 100, generic.Prorate(period(t, "20240101", "20240131"), allocations))

	tenDays := generic.Prorate(period(t, "20240101", "20240110"), allocations)
	assert.True(t, tenDays.Sub(decimal.RequireFromString("32.2580645161290323")).Abs().LessThan(decimal.New(1, -12)),
		"got %s", tenDays)
}

func TestNewAllocation_RejectsNegativeAmount(t *testing.T) {
	_, err := generic.NewAllocation(generic.MustYearMonth("202407"), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, generic.ErrNegativeAmount)
	assert.True(t, generic.IsClientError(err))

	zero, err := generic.NewAllocation(generic.MustYearMonth("202407"), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, zero.Amount.IsZero())
}

func TestNewAllocation_RejectsInvalidMonth(t *testing.T) {
	for _, month := range []generic.YearMonth{
		{},
		{Year: 2024, Month: 13},
		{Year: 0, Month: time.July},
	} {
		_, err := generic.NewAllocation(month, decimal.NewFromInt(5))
		assert.ErrorIs(t, err, generic.ErrInvalidMonth, "%+v", month)
	}
}

// =============================================================================
// BREAKDOWN
// =============================================================================

func TestProrateByMonth_IncludesMissingMonths(t *testing.T) {
	query := period(t, "20231221", "20240220")
	rows := generic.ProrateByMonth(query, generic.LookupFrom(sampleAllocations()))

	require.Len(t, rows, 3)

	assert.Equal(t, "202312", rows[0].Month.String())
	assert.True(t, rows[0].Allocated)
	assert.Equal(t, 11, rows[0].OverlapDays)
	assert.Equal(t, 31, rows[0].DaysInMonth)
	assertDecimal(t, 110, rows[0].Contribution)

	assert.Equal(t, "202401", rows[1].Month.String())
	assert.False(t, rows[1].Allocated, "January has no allocation")
	assert.Equal(t, 31, rows[1].OverlapDays)
	assert.True(t, rows[1].Contribution.IsZero())

	assert.Equal(t, "202402", rows[2].Month.String())
	assert.Equal(t, 20, rows[2].OverlapDays)
	assert.Equal(t, 29, rows[2].DaysInMonth, "2024 is a leap year")
	assertDecimal(t, 2000, rows[2].Contribution)

	assertDecimal(t, 2110, generic.SumContributions(rows))
}

func TestProrateByMonth_MatchesProrate(t *testing.T) {
	allocations := sampleAllocations()
	lookup := generic.LookupFrom(allocations)

	for _, q := range [][2]string{
		{"20240101", "20241231"},
		{"20231201", "20240131"},
		{"20240731", "20240801"},
		{"20240411", "20240530"},
	} {
		query := period(t, q[0], q[1])
		byMonth := generic.SumContributions(generic.ProrateByMonth(query, lookup))
		assert.True(t, generic.Prorate(query, allocations).Equal(byMonth), "%s", query)
	}
}
