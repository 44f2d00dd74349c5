/*
errors.go - Centralized error types for the proration core

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers branch on the sentinels with errors.Is; the structured types
  carry the offending input.

ERROR CATEGORIES:
  1. Input errors - unparsable dates and months, negative amounts
  2. Store errors - missing allocations, undecodable rows

NOTE:
  An end date before the start date is NOT an error for TotalAmount;
  it yields zero. ErrInvalidPeriod is only returned by NewPeriod.

SEE ALSO:
  - budget/service.go: Surfaces these errors
  - api/handlers.go: Maps them to HTTP status codes
*/
package generic

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDate is returned when a date string cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidMonth is returned when a month identifier is not YYYYMM.
	ErrInvalidMonth = errors.New("invalid month")

	// ErrNegativeAmount is returned when an allocation amount is below zero.
	ErrNegativeAmount = errors.New("negative allocation amount")

	// ErrAllocationNotFound is returned when no allocation exists for a month.
	ErrAllocationNotFound = errors.New("allocation not found")

	// ErrDuplicateMonth is returned when a batch lists the same month twice.
	ErrDuplicateMonth = errors.New("duplicate month in batch")

	// ErrInvalidPeriod is returned when a period is malformed (end before start).
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrCorruptAllocation is returned when a stored row cannot be decoded.
	// It is a server-side failure, never a client error.
	ErrCorruptAllocation = errors.New("corrupt allocation row")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidDateError reports the raw input that failed to parse.
type InvalidDateError struct {
	Input string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q: expected YYYYMMDD or YYYY-MM-DD", e.Input)
}

func (e *InvalidDateError) Unwrap() error {
	return ErrInvalidDate
}

// InvalidMonthError reports the raw month identifier that failed to parse.
type InvalidMonthError struct {
	Input string
}

func (e *InvalidMonthError) Error() string {
	return fmt.Sprintf("invalid month %q: expected YYYYMM", e.Input)
}

func (e *InvalidMonthError) Unwrap() error {
	return ErrInvalidMonth
}

type NegativeAmountError struct {
	Month  YearMonth
	Amount decimal.Decimal
}

func (e *NegativeAmountError) Error() string {
	return fmt.Sprintf("negative amount %s for %s", e.Amount, e.Month)
}

func (e *NegativeAmountError) Unwrap() error {
	return ErrNegativeAmount
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidMonth) ||
		errors.Is(err, ErrNegativeAmount) ||
		errors.Is(err, ErrDuplicateMonth) ||
		errors.Is(err, ErrInvalidPeriod)
}

// IsNotFound returns true if the error indicates a missing allocation.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAllocationNotFound)
}
