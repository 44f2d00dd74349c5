/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements generic.AllocationStore using SQLite. The same SQL works on
  PostgreSQL apart from the upsert syntax and placeholders.

KEY TABLES:
  allocations: one row per calendar month (year_month is unique)
  schema_migrations: managed by golang-migrate

AMOUNTS:
  Stored as decimal text (decimal.Decimal.String()) so no precision is lost
  in REAL columns.

CONCURRENCY:
  Uses sync.RWMutex around statements, and a single open connection so
  ":memory:" databases are shared by every query.

MIGRATION:
  Versioned SQL files under migrations/ are embedded and applied with
  golang-migrate on New().

USAGE:
  store, err := sqlite.New("./data/budget.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  svc := budget.NewService(store)

SEE ALSO:
  - generic/store.go: Interface definitions
  - generic/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/budget-engine/generic"
)

// Store implements generic.AllocationStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ generic.AllocationStore = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// =============================================================================
// READS (generic.AllocationReader)
// =============================================================================

// Get returns the allocation for one month.
func (s *Store) Get(ctx context.Context, month generic.YearMonth) (generic.Allocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ym, amount string
	err := s.db.QueryRowContext(ctx,
		"SELECT year_month, amount FROM allocations WHERE year_month = ?",
		month.String(),
	).Scan(&ym, &amount)
	if errors.Is(err, sql.ErrNoRows) {
		return generic.Allocation{}, generic.ErrAllocationNotFound
	}
	if err != nil {
		return generic.Allocation{}, fmt.Errorf("failed to get allocation %s: %w", month, err)
	}
	return parseAllocation(ym, amount)
}

// ListRange returns allocations between two months, both included.
func (s *Store) ListRange(ctx context.Context, from, to generic.YearMonth) ([]generic.Allocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT year_month, amount
		FROM allocations
		WHERE year_month >= ? AND year_month <= ?
		ORDER BY year_month ASC
	`
	return s.queryAllocations(ctx, query, from.String(), to.String())
}

// List returns every allocation.
func (s *Store) List(ctx context.Context) ([]generic.Allocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryAllocations(ctx, "SELECT year_month, amount FROM allocations ORDER BY year_month ASC")
}

func (s *Store) queryAllocations(ctx context.Context, query string, args ...any) ([]generic.Allocation, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations: %w", err)
	}
	defer rows.Close()

	var allocations []generic.Allocation
	for rows.Next() {
		var ym, amount string
		if err := rows.Scan(&ym, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		a, err := parseAllocation(ym, amount)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, a)
	}

	return allocations, rows.Err()
}

// =============================================================================
// WRITES
// =============================================================================

// Save inserts or replaces the allocation for its month.
func (s *Store) Save(ctx context.Context, a generic.Allocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return upsert(ctx, s.db, a)
}

// SaveBatch upserts allocations in a single SQL transaction.
func (s *Store) SaveBatch(ctx context.Context, allocations []generic.Allocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Check for duplicate months within the batch first
	seen := make(map[generic.YearMonth]bool, len(allocations))
	for _, a := range allocations {
		if seen[a.Month] {
			return generic.ErrDuplicateMonth
		}
		seen[a.Month] = true
	}

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	for _, a := range allocations {
		if err := upsert(ctx, sqlTx, a); err != nil {
			return err
		}
	}

	return sqlTx.Commit()
}

func upsert(ctx context.Context, db interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}, a generic.Allocation) error {
	now := time.Now().UTC().Format(time.RFC3339)

	query := `
		INSERT INTO allocations (id, year_month, amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(year_month) DO UPDATE SET
			amount = excluded.amount,
			updated_at = excluded.updated_at
	`

	_, err := db.ExecContext(ctx, query,
		uuid.NewString(),
		a.Month.String(),
		a.Amount.String(),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to save allocation %s: %w", a.Month, err)
	}
	return nil
}

// Delete removes a month's allocation.
func (s *Store) Delete(ctx context.Context, month generic.YearMonth) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM allocations WHERE year_month = ?", month.String())
	if err != nil {
		return fmt.Errorf("failed to delete allocation %s: %w", month, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete allocation %s: %w", month, err)
	}
	if n == 0 {
		return generic.ErrAllocationNotFound
	}
	return nil
}

// Helper functions

func parseAllocation(ym, amount string) (generic.Allocation, error) {
	// %v, not %w: a bad row must not surface as the client's InvalidMonthError.
	month, err := generic.ParseYearMonth(ym)
	if err != nil {
		return generic.Allocation{}, fmt.Errorf("%w: %v", generic.ErrCorruptAllocation, err)
	}
	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return generic.Allocation{}, fmt.Errorf("%w: amount for %s: %v", generic.ErrCorruptAllocation, ym, err)
	}
	return generic.Allocation{Month: month, Amount: value}, nil
}
