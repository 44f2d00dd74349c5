// Package store provides AllocationStore implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/budget-engine/generic"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu          sync.RWMutex
	allocations map[generic.YearMonth]generic.Allocation
}

func NewMemory() *Memory {
	return &Memory{
		allocations: make(map[generic.YearMonth]generic.Allocation),
	}
}

// NewMemoryWith returns a store pre-loaded with allocations.
func NewMemoryWith(allocations []generic.Allocation) *Memory {
	m := NewMemory()
	for _, a := range allocations {
		m.allocations[a.Month] = a
	}
	return m
}

func (m *Memory) Get(_ context.Context, month generic.YearMonth) (generic.Allocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.allocations[month]
	if !ok {
		return generic.Allocation{}, generic.ErrAllocationNotFound
	}
	return a, nil
}

func (m *Memory) ListRange(_ context.Context, from, to generic.YearMonth) ([]generic.Allocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []generic.Allocation
	for month, a := range m.allocations {
		if month.Before(from) || to.Before(month) {
			continue
		}
		result = append(result, a)
	}
	sortByMonth(result)
	return result, nil
}

func (m *Memory) List(_ context.Context) ([]generic.Allocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]generic.Allocation, 0, len(m.allocations))
	for _, a := range m.allocations {
		result = append(result, a)
	}
	sortByMonth(result)
	return result, nil
}

// Save inserts or replaces a month's allocation.
func (m *Memory) Save(_ context.Context, a generic.Allocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.allocations[a.Month] = a
	return nil
}

// SaveBatch validates the whole batch before writing any of it.
func (m *Memory) SaveBatch(_ context.Context, allocations []generic.Allocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[generic.YearMonth]bool, len(allocations))
	for _, a := range allocations {
		if seen[a.Month] {
			return generic.ErrDuplicateMonth
		}
		seen[a.Month] = true
	}

	for _, a := range allocations {
		m.allocations[a.Month] = a
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, month generic.YearMonth) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.allocations[month]; !ok {
		return generic.ErrAllocationNotFound
	}
	delete(m.allocations, month)
	return nil
}

func sortByMonth(allocations []generic.Allocation) {
	sort.Slice(allocations, func(i, j int) bool {
		return allocations[i].Month.Before(allocations[j].Month)
	})
}
