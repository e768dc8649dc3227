package home

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andrefarias/budgetmaster/internal/budget"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.dashboard)
}

type recentBudgetResponse struct {
	ID           uuid.UUID       `json:"id"`
	CustomerName string          `json:"customer_name"`
	Status       budget.Status   `json:"status"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	IssueDate    string          `json:"issue_date"`
}

type dashboardResponse struct {
	TotalCount    int                    `json:"total_count"`
	PendingCount  int                    `json:"pending_count"`
	ApprovedCount int                    `json:"approved_count"`
	RejectedCount int                    `json:"rejected_count"`
	TotalValue    decimal.Decimal        `json:"total_value"`
	Recent        []recentBudgetResponse `json:"recent"`
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Summarize(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := dashboardResponse{
		TotalCount:    stats.TotalCount,
		PendingCount:  stats.PendingCount,
		ApprovedCount: stats.ApprovedCount,
		RejectedCount: stats.RejectedCount,
		TotalValue:    stats.TotalValue,
		Recent:        make([]recentBudgetResponse, 0, len(stats.Recent)),
	}

	for _, b := range stats.Recent {
		resp.Recent = append(resp.Recent, recentBudgetResponse{
			ID:           b.ID,
			CustomerName: b.CustomerName,
			Status:       b.Status,
			TotalAmount:  b.TotalAmount,
			IssueDate:    b.IssueDate.Format(time.DateOnly),
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
