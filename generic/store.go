/*
store.go - Persistence interface for monthly allocations

PURPOSE:
  Defines the interface between the proration service and the database.
  The proration math never touches a store directly; the budget service
  loads the allocations a query needs and hands them to Prorate.

KEY INTERFACES:
  AllocationReader: lookups used by queries (by month, by month range)
  AllocationStore:  reader plus writes used by management endpoints

UPSERT SEMANTICS:
  There is at most one allocation per month. Save replaces the amount of an
  existing month. SaveBatch is all-or-nothing.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite
  - generic/store/memory.go: In-memory for tests and the --sample CLI mode

SEE ALSO:
  - budget/service.go: Consumer of these interfaces
*/
package generic

import "context"

// AllocationReader answers "given a month, return its allocation if any".
type AllocationReader interface {
	// Get returns ErrAllocationNotFound when the month has no allocation.
	Get(ctx context.Context, month YearMonth) (Allocation, error)

	// ListRange returns allocations with from <= month <= to, ordered by month.
	ListRange(ctx context.Context, from, to YearMonth) ([]Allocation, error)

	// List returns every allocation ordered by month.
	List(ctx context.Context) ([]Allocation, error)
}

// AllocationStore adds writes to AllocationReader.
type AllocationStore interface {
	AllocationReader

	// Save inserts or replaces the allocation for its month.
	Save(ctx context.Context, a Allocation) error

	// SaveBatch upserts all allocations atomically.
	// Either all succeed or none do.
	SaveBatch(ctx context.Context, allocations []Allocation) error

	// Delete returns ErrAllocationNotFound when nothing was removed.
	Delete(ctx context.Context, month YearMonth) error
}
