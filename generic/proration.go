package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// PRORATION - Spread monthly allocations over a day range
// =============================================================================

// Prorate sums every allocation's share of query. Each allocation
// contributes overlapDays * amount / daysInMonth; allocations outside the
// query contribute zero. Order of allocations does not matter.
func Prorate(query Period, allocations []Allocation) decimal.Decimal {
	total := decimal.Zero
	for _, a := range allocations {
		total = total.Add(a.Contribution(query))
	}
	return total
}

// AllocationLookup returns the allocation for a month, if there is one.
type AllocationLookup func(YearMonth) (Allocation, bool)

// LookupFrom indexes a slice by month. Later entries win on duplicates.
func LookupFrom(allocations []Allocation) AllocationLookup {
	byMonth := make(map[YearMonth]Allocation, len(allocations))
	for _, a := range allocations {
		byMonth[a.Month] = a
	}
	return func(m YearMonth) (Allocation, bool) {
		a, ok := byMonth[m]
		return a, ok
	}
}

// ProrateByMonth walks every calendar month touched by query and reports
// what each one contributes. Months without an allocation are included with
// a zero contribution. The contributions add up to Prorate over the same
// allocations.
func ProrateByMonth(query Period, lookup AllocationLookup) []MonthContribution {
	months := query.Months()
	rows := make([]MonthContribution, 0, len(months))
	for _, m := range months {
		row := MonthContribution{
			Month:        m,
			Amount:       decimal.Zero,
			OverlapDays:  query.OverlapDays(m.Period()),
			DaysInMonth:  m.Days(),
			Contribution: decimal.Zero,
		}
		if a, ok := lookup(m); ok {
			row.Allocated = true
			row.Amount = a.Amount
			row.Contribution = a.Contribution(query)
		}
		rows = append(rows, row)
	}
	return rows
}

// SumContributions totals a breakdown.
func SumContributions(rows []MonthContribution) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Contribution)
	}
	return total
}
