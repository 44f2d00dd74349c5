package budget

import (
	"github.com/shopspring/decimal"
	"github.com/warp/budget-engine/generic"
)

// SampleAllocations is the reference budget used by demos and tests.
// Months in between (202401, 202403-202405, 202410+) are deliberately absent.
func SampleAllocations() []generic.Allocation {
	return []generic.Allocation{
		{Month: generic.MustYearMonth("202312"), Amount: decimal.NewFromInt(310)},
		{Month: generic.MustYearMonth("202402"), Amount: decimal.NewFromInt(2900)},
		{Month: generic.MustYearMonth("202406"), Amount: decimal.NewFromInt(30000000)},
		{Month: generic.MustYearMonth("202407"), Amount: decimal.NewFromInt(3100)},
		{Month: generic.MustYearMonth("202408"), Amount: decimal.NewFromInt(31)},
		{Month: generic.MustYearMonth("202409"), Amount: decimal.NewFromInt(300000)},
	}
}
