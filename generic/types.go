/*
Package generic provides the calendar and proration core of the budget engine.

PURPOSE:
  Domain-agnostic building blocks for spreading monthly amounts over
  arbitrary day ranges. Nothing here knows where allocations come from;
  the budget package wires a store to these functions.

KEY CONCEPTS IN THIS FILE (types.go):
  - Allocation: the full budget of one calendar month
  - MonthContribution: what one month adds to a prorated total

DESIGN PRINCIPLES:
  1. Immutability: allocations are values, never mutated in place
  2. Precision: uses decimal.Decimal to avoid floating-point errors
  3. Purity: proration is a function of the query and the allocations only

USAGE:
  alloc, _ := generic.NewAllocation(generic.MustYearMonth("202407"), decimal.NewFromInt(3100))
  query := generic.Period{Start: generic.NewTimePoint(2024, 7, 20), End: generic.NewTimePoint(2024, 7, 21)}
  total := generic.Prorate(query, []generic.Allocation{alloc}) // 200

SEE ALSO:
  - period.go: Period and YearMonth
  - proration.go: Prorate and ProrateByMonth
  - store.go: AllocationStore interface
*/
package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// ALLOCATION - Budget for one whole calendar month
// =============================================================================

type Allocation struct {
	Month  YearMonth
	Amount decimal.Decimal
}

// NewAllocation rejects months NewYearMonth would reject, including the zero
// YearMonth, and negative amounts.
func NewAllocation(month YearMonth, amount decimal.Decimal) (Allocation, error) {
	if _, err := NewYearMonth(month.Year, month.Month); err != nil {
		return Allocation{}, err
	}
	if amount.IsNegative() {
		return Allocation{}, &NegativeAmountError{Month: month, Amount: amount}
	}
	return Allocation{Month: month, Amount: amount}, nil
}

// Period is the implicit day range covered by the allocation.
func (a Allocation) Period() Period { return a.Month.Period() }

// DailyAmount spreads the allocation evenly over the days of its month.
func (a Allocation) DailyAmount() decimal.Decimal {
	return a.Amount.Div(decimal.NewFromInt(int64(a.Month.Days())))
}

// Contribution is the share of the allocation falling inside query.
// Multiplying before dividing keeps whole months exact.
func (a Allocation) Contribution(query Period) decimal.Decimal {
	days := query.OverlapDays(a.Period())
	if days == 0 {
		return decimal.Zero
	}
	return a.Amount.
		Mul(decimal.NewFromInt(int64(days))).
		Div(decimal.NewFromInt(int64(a.Month.Days())))
}

// =============================================================================
// MONTH CONTRIBUTION - One row of a breakdown
// =============================================================================

type MonthContribution struct {
	Month        YearMonth
	Allocated    bool // false when the month has no allocation
	Amount       decimal.Decimal
	OverlapDays  int
	DaysInMonth  int
	Contribution decimal.Decimal
}
