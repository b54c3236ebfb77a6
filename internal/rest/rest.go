// Package rest serves the plain JSON routes the budget page fetches
// directly, next to the Connect services.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mmynk/cuptrip/internal/service"
	"github.com/mmynk/cuptrip/pkg/api"
)

// maxBodyBytes caps a preview request body.
const maxBodyBytes = 1 << 20

// Budget is the part of service.BudgetService the routes call.
type Budget interface {
	Report(ctx context.Context) (*api.SettlementReport, error)
	Preview(req *api.PreviewSettlementRequest) *api.SettlementReport
	DailySummary(ctx context.Context, date string) (*api.DailySummary, error)
}

// Handler serves the REST routes.
type Handler struct {
	budget Budget
}

// New creates a Handler backed by budget.
func New(budget Budget) *Handler {
	return &Handler{budget: budget}
}

// Register mounts every route on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET "+api.RouteSettlement, h.getSettlement)
	mux.HandleFunc("POST "+api.RouteSettlementPreview, h.previewSettlement)
	mux.HandleFunc("GET "+api.RouteDailySummary, h.getDailySummary)
	mux.HandleFunc("GET "+api.RouteHealth, h.healthz)
}

func (h *Handler) getSettlement(w http.ResponseWriter, r *http.Request) {
	report, err := h.budget.Report(r.Context())
	if err != nil {
		slog.Error("GET /api/settlement failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute settlement")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) previewSettlement(w http.ResponseWriter, r *http.Request) {
	var req api.PreviewSettlementRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		slog.Warn("POST /api/settlement/preview: bad body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, h.budget.Preview(&req))
}

func (h *Handler) getDailySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.budget.DailySummary(r.Context(), r.URL.Query().Get("date"))
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("GET /api/summary/daily failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to summarize day")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.ErrorResponse{Error: msg})
}
