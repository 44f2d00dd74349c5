/*
Package budget answers "how much budget falls inside this date range?".

PURPOSE:
  Wires an allocation store to the proration core. A query loads only the
  allocations for the months it touches and hands them to generic.Prorate.

OPERATIONS:
  TotalAmount:      prorated total for [start, end], zero when end < start
  Breakdown:        the same total, explained month by month
  SetAllocation:    upsert one month
  GetAllocation:    read one month
  RemoveAllocation: delete one month
  ListAllocations:  every month, in order
  Import:           atomic bulk upsert

DATES:
  Inputs are YYYYMMDD or YYYY-MM-DD strings. Unparsable input fails with
  *generic.InvalidDateError.

SEE ALSO:
  - generic/proration.go: The arithmetic
  - loader.go: Allocation files
*/
package budget

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/warp/budget-engine/generic"
)

// Service is safe for concurrent use when its store is.
type Service struct {
	store  generic.AllocationStore
	logger zerolog.Logger
}

type Option func(*Service)

// WithLogger attaches a logger; the default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func NewService(store generic.AllocationStore, opts ...Option) *Service {
	s := &Service{store: store, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Breakdown is a prorated total together with the per-month rows it was
// computed from.
type Breakdown struct {
	Start  generic.TimePoint
	End    generic.TimePoint
	Total  decimal.Decimal
	Months []generic.MonthContribution
}

// =============================================================================
// QUERIES
// =============================================================================

// TotalAmount returns the budget prorated over [start, end], both days
// included. An end before start yields zero without error.
func (s *Service) TotalAmount(ctx context.Context, start, end string) (decimal.Decimal, error) {
	query, ok, err := parseQuery(start, end)
	if err != nil || !ok {
		return decimal.Zero, err
	}

	allocations, err := s.store.ListRange(ctx, query.Start.YearMonth(), query.End.YearMonth())
	if err != nil {
		return decimal.Zero, fmt.Errorf("load allocations for %s: %w", query, err)
	}

	total := generic.Prorate(query, allocations)
	s.logger.Debug().
		Str("start", query.Start.String()).
		Str("end", query.End.String()).
		Int("allocations", len(allocations)).
		Str("total", total.String()).
		Msg("prorated total")
	return total, nil
}

// Breakdown explains TotalAmount month by month. Months without an
// allocation appear with a zero contribution.
func (s *Service) Breakdown(ctx context.Context, start, end string) (*Breakdown, error) {
	query, ok, err := parseQuery(start, end)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Breakdown{Start: query.Start, End: query.End, Total: decimal.Zero, Months: []generic.MonthContribution{}}, nil
	}

	allocations, err := s.store.ListRange(ctx, query.Start.YearMonth(), query.End.YearMonth())
	if err != nil {
		return nil, fmt.Errorf("load allocations for %s: %w", query, err)
	}

	rows := generic.ProrateByMonth(query, generic.LookupFrom(allocations))
	return &Breakdown{
		Start:  query.Start,
		End:    query.End,
		Total:  generic.SumContributions(rows),
		Months: rows,
	}, nil
}

// parseQuery returns ok=false when end precedes start. The returned period
// still carries both parsed days in that case.
func parseQuery(start, end string) (generic.Period, bool, error) {
	from, err := generic.ParseDate(start)
	if err != nil {
		return generic.Period{}, false, err
	}
	to, err := generic.ParseDate(end)
	if err != nil {
		return generic.Period{}, false, err
	}
	return generic.Period{Start: from, End: to}, !to.Before(from), nil
}

// =============================================================================
// ALLOCATION MANAGEMENT
// =============================================================================

// SetAllocation creates or replaces the allocation for month.
func (s *Service) SetAllocation(ctx context.Context, month string, amount decimal.Decimal) (generic.Allocation, error) {
	ym, err := generic.ParseYearMonth(month)
	if err != nil {
		return generic.Allocation{}, err
	}
	a, err := generic.NewAllocation(ym, amount)
	if err != nil {
		return generic.Allocation{}, err
	}
	if err := s.store.Save(ctx, a); err != nil {
		return generic.Allocation{}, err
	}
	s.logger.Debug().Str("month", ym.String()).Str("amount", amount.String()).Msg("allocation saved")
	return a, nil
}

func (s *Service) GetAllocation(ctx context.Context, month string) (generic.Allocation, error) {
	ym, err := generic.ParseYearMonth(month)
	if err != nil {
		return generic.Allocation{}, err
	}
	return s.store.Get(ctx, ym)
}

func (s *Service) RemoveAllocation(ctx context.Context, month string) error {
	ym, err := generic.ParseYearMonth(month)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, ym); err != nil {
		return err
	}
	s.logger.Debug().Str("month", ym.String()).Msg("allocation removed")
	return nil
}

func (s *Service) ListAllocations(ctx context.Context) ([]generic.Allocation, error) {
	return s.store.List(ctx)
}

// Import validates every allocation, then upserts them in one batch.
func (s *Service) Import(ctx context.Context, allocations []generic.Allocation) (int, error) {
	for _, a := range allocations {
		if _, err := generic.NewAllocation(a.Month, a.Amount); err != nil {
			return 0, err
		}
	}
	if err := s.store.SaveBatch(ctx, allocations); err != nil {
		return 0, err
	}
	s.logger.Info().Int("count", len(allocations)).Msg("allocations imported")
	return len(allocations), nil
}
