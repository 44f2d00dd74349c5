/*
handlers.go - HTTP API handlers for the budget engine

PURPOSE:
  Exposes budget.Service via REST. Handles HTTP request/response and JSON
  serialization; all domain decisions are delegated to the service.

ENDPOINTS:
  Allocations:
    GET    /api/allocations            List all allocations
    POST   /api/allocations/import     Bulk upsert
    GET    /api/allocations/{month}    Get one month (YYYYMM)
    PUT    /api/allocations/{month}    Create or replace one month
    DELETE /api/allocations/{month}    Remove one month

  Budget queries:
    GET    /api/budget/total?start=&end=      Prorated total
    GET    /api/budget/breakdown?start=&end=  Total with per-month rows

  Dates are YYYYMMDD or YYYY-MM-DD. end before start returns a zero total.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid date, month, amount or body
  - 404: Allocation not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/warp/budget-engine/budget"
	"github.com/warp/budget-engine/generic"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service *budget.Service
	Logger  zerolog.Logger
}

// NewHandler creates a new handler for the given service.
func NewHandler(svc *budget.Service, logger zerolog.Logger) *Handler {
	return &Handler{Service: svc, Logger: logger}
}

// =============================================================================
// ALLOCATION HANDLERS
// =============================================================================

// ListAllocations returns every allocation ordered by month.
func (h *Handler) ListAllocations(w http.ResponseWriter, r *http.Request) {
	allocations, err := h.Service.ListAllocations(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "Failed to list allocations", err)
		return
	}

	dtos := make([]AllocationDTO, len(allocations))
	for i, a := range allocations {
		dtos[i] = toAllocationDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetAllocation returns a single month.
func (h *Handler) GetAllocation(w http.ResponseWriter, r *http.Request) {
	a, err := h.Service.GetAllocation(r.Context(), chi.URLParam(r, "month"))
	if err != nil {
		h.writeServiceError(w, r, "Failed to get allocation", err)
		return
	}
	writeJSON(w, http.StatusOK, toAllocationDTO(a))
}

// SetAllocation creates or replaces a month's allocation.
func (h *Handler) SetAllocation(w http.ResponseWriter, r *http.Request) {
	var req SetAllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !req.Amount.Valid {
		writeError(w, http.StatusBadRequest, "amount is required", nil)
		return
	}

	a, err := h.Service.SetAllocation(r.Context(), chi.URLParam(r, "month"), req.Amount.Decimal)
	if err != nil {
		h.writeServiceError(w, r, "Failed to save allocation", err)
		return
	}
	writeJSON(w, http.StatusOK, toAllocationDTO(a))
}

// DeleteAllocation removes a month's allocation.
func (h *Handler) DeleteAllocation(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.RemoveAllocation(r.Context(), chi.URLParam(r, "month")); err != nil {
		h.writeServiceError(w, r, "Failed to delete allocation", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ImportAllocations upserts a batch atomically.
func (h *Handler) ImportAllocations(w http.ResponseWriter, r *http.Request) {
	allocations, err := budget.LoadAllocations(r.Body, budget.FormatJSON)
	if err != nil {
		if generic.IsClientError(err) {
			h.writeServiceError(w, r, "Invalid allocations", err)
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	n, err := h.Service.Import(r.Context(), allocations)
	if err != nil {
		h.writeServiceError(w, r, "Failed to import allocations", err)
		return
	}
	writeJSON(w, http.StatusOK, ImportAllocationsResponse{Imported: n})
}

// =============================================================================
// BUDGET QUERIES
// =============================================================================

// GetTotal returns the prorated amount for ?start=&end=.
func (h *Handler) GetTotal(w http.ResponseWriter, r *http.Request) {
	start, end, ok := rangeParams(w, r)
	if !ok {
		return
	}

	total, err := h.Service.TotalAmount(r.Context(), start, end)
	if err != nil {
		h.writeServiceError(w, r, "Failed to compute total", err)
		return
	}
	writeJSON(w, http.StatusOK, TotalResponse{Start: start, End: end, Total: total.String()})
}

// GetBreakdown returns the prorated amount with one row per month.
func (h *Handler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	start, end, ok := rangeParams(w, r)
	if !ok {
		return
	}

	b, err := h.Service.Breakdown(r.Context(), start, end)
	if err != nil {
		h.writeServiceError(w, r, "Failed to compute breakdown", err)
		return
	}
	writeJSON(w, http.StatusOK, toBreakdownResponse(b))
}

// Health is a liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func rangeParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	q := r.URL.Query()
	start, end := q.Get("start"), q.Get("end")
	if start == "" || end == "" {
		writeError(w, http.StatusBadRequest, "start and end query parameters are required", nil)
		return "", "", false
	}
	return start, end, true
}

// writeServiceError maps domain errors to HTTP status codes.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, message string, err error) {
	switch {
	case generic.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case generic.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		h.Logger.Error().Err(err).Str("path", r.URL.Path).Msg(message)
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
