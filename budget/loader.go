package budget

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/budget-engine/generic"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// ALLOCATION FILES - YAML or JSON lists of monthly budgets
// =============================================================================

// Format selects the decoder used by LoadAllocations.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// AllocationFile is the on-disk document:
//
//	allocations:
//	  - month: "202407"
//	    amount: "3100"
type AllocationFile struct {
	Allocations []AllocationEntry `json:"allocations" yaml:"allocations"`
}

// AllocationEntry accepts amounts written as strings or numbers.
type AllocationEntry struct {
	Month  generic.YearMonth `json:"month" yaml:"month"`
	Amount decimal.Decimal   `json:"amount" yaml:"amount"`
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported allocation file extension %q (use .yaml, .yml or .json)", filepath.Ext(path))
	}
}

// LoadAllocationsFile opens path and decodes it according to its extension.
func LoadAllocationsFile(path string) ([]generic.Allocation, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open allocation file: %w", err)
	}
	defer f.Close()

	return LoadAllocations(f, format)
}

// LoadAllocations decodes and validates an allocation document. Negative
// amounts and repeated months are rejected.
func LoadAllocations(r io.Reader, format Format) ([]generic.Allocation, error) {
	var doc AllocationFile
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode yaml allocations: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode json allocations: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown allocation format %q", format)
	}

	seen := make(map[generic.YearMonth]bool, len(doc.Allocations))
	allocations := make([]generic.Allocation, 0, len(doc.Allocations))
	for i, e := range doc.Allocations {
		if e.Month == (generic.YearMonth{}) {
			return nil, &generic.InvalidMonthError{Input: fmt.Sprintf("entry %d: month is required", i+1)}
		}
		if seen[e.Month] {
			return nil, fmt.Errorf("%w: %s", generic.ErrDuplicateMonth, e.Month)
		}
		seen[e.Month] = true

		a, err := generic.NewAllocation(e.Month, e.Amount)
		if err != nil {
			return nil, err
		}
		allocations = append(allocations, a)
	}
	return allocations, nil
}
