/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupled from the
  generic types so the wire format can evolve on its own.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

AMOUNTS:
  Always strings (decimal.Decimal.String()) to keep full precision in
  JavaScript clients.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/shopspring/decimal"
	"github.com/warp/budget-engine/budget"
	"github.com/warp/budget-engine/generic"
)

// =============================================================================
// ALLOCATIONS
// =============================================================================

type AllocationDTO struct {
	Month       string `json:"month"` // YYYYMM
	Amount      string `json:"amount"`
	DaysInMonth int    `json:"days_in_month"`
	DailyAmount string `json:"daily_amount"`
}

// SetAllocationRequest is the body of PUT /api/allocations/{month}.
// Amount is required; a missing or null amount is rejected.
type SetAllocationRequest struct {
	Amount decimal.NullDecimal `json:"amount"`
}

type ImportAllocationsResponse struct {
	Imported int `json:"imported"`
}

// =============================================================================
// QUERIES
// =============================================================================

type TotalResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Total string `json:"total"`
}

type MonthContributionDTO struct {
	Month        string `json:"month"`
	Allocated    bool   `json:"allocated"`
	Amount       string `json:"amount"`
	OverlapDays  int    `json:"overlap_days"`
	DaysInMonth  int    `json:"days_in_month"`
	Contribution string `json:"contribution"`
}

type BreakdownResponse struct {
	Start  string                 `json:"start"`
	End    string                 `json:"end"`
	Total  string                 `json:"total"`
	Months []MonthContributionDTO `json:"months"`
}

// =============================================================================
// ERRORS
// =============================================================================

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toAllocationDTO(a generic.Allocation) AllocationDTO {
	return AllocationDTO{
		Month:       a.Month.String(),
		Amount:      a.Amount.String(),
		DaysInMonth: a.Month.Days(),
		DailyAmount: a.DailyAmount().String(),
	}
}

func toBreakdownResponse(b *budget.Breakdown) BreakdownResponse {
	months := make([]MonthContributionDTO, len(b.Months))
	for i, m := range b.Months {
		months[i] = MonthContributionDTO{
			Month:        m.Month.String(),
			Allocated:    m.Allocated,
			Amount:       m.Amount.String(),
			OverlapDays:  m.OverlapDays,
			DaysInMonth:  m.DaysInMonth,
			Contribution: m.Contribution.String(),
		}
	}
	return BreakdownResponse{
		Start:  b.Start.String(),
		End:    b.End.String(),
		Total:  b.Total.String(),
		Months: months,
	}
}
