package budget

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andrefarias/budgetmaster/internal/budget"
	"github.com/andrefarias/budgetmaster/internal/catalog"
)

type Handler struct {
	svc     *budget.Service
	catalog *catalog.Service
}

func NewHandler(svc *budget.Service, catalogSvc *catalog.Service) *Handler {
	return &Handler{svc: svc, catalog: catalogSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/new", h.createForm)
	r.Get("/{id}", h.get)
	r.Get("/{id}/edit", h.editForm)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type itemDTO struct {
	Description string           `json:"description"`
	ItemType    budget.ItemType  `json:"item_type,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

func (d itemDTO) toParams() budget.ItemParams {
	return budget.ItemParams{
		Description: d.Description,
		ItemType:    d.ItemType,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		Price:       d.Price,
	}
}

// expiryDays decodes the expiry window leniently. Numbers and numeric
// strings are accepted; anything else is treated as absent, so the default
// window applies instead of failing the request.
type expiryDays struct {
	value *int
}

func (d *expiryDays) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		d.value = &n
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			d.value = &n
		}
	}

	return nil
}

type createBudgetRequest struct {
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	IssueDate     string     `json:"issue_date"`
	ExpiryDays    expiryDays `json:"expiry_days"`
	Notes         string     `json:"notes"`
	Items         []itemDTO  `json:"items"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var issueDate time.Time

	if req.IssueDate != "" {
		t, err := time.Parse(time.DateOnly, req.IssueDate)
		if err != nil {
			http.Error(w, "invalid issue_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		issueDate = t
	}

	items := make([]budget.ItemParams, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, it.toParams())
	}

	b, err := h.svc.Create(r.Context(), budget.CreateParams{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		IssueDate:     issueDate,
		ExpiryDays:    req.ExpiryDays.value,
		Notes:         req.Notes,
		Items:         items,
	})
	if err != nil {
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(budgets)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, budget.ErrNotFound) {
			http.Error(w, "budget not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// createForm returns what a creation view needs: the catalogue sorted by
// name and today's date.
func (h *Handler) createForm(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := createFormResponse{
		Products: toProductResponseList(products),
		Today:    time.Now().Format(time.DateOnly),
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// editForm returns the budget with its items plus the catalogue, for
// populating an edit view.
func (h *Handler) editForm(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, budget.ErrNotFound) {
			http.Error(w, "budget not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	products, err := h.catalog.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := editFormResponse{
		Budget:   toResponse(b),
		Products: toProductResponseList(products),
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateBudgetRequest struct {
	CustomerName  *string        `json:"customer_name"`
	CustomerEmail *string        `json:"customer_email"`
	IssueDate     *string        `json:"issue_date"`
	ExpiryDate    *string        `json:"expiry_date"`
	ExpiryDays    expiryDays     `json:"expiry_days"`
	Status        *budget.Status `json:"status"`
	Notes         *string        `json:"notes"`
	Items         []itemDTO      `json:"items"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := budget.UpdateParams{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		ExpiryDays:    req.ExpiryDays.value,
		Status:        req.Status,
		Notes:         req.Notes,
	}

	if req.IssueDate != nil {
		t, err := time.Parse(time.DateOnly, *req.IssueDate)
		if err != nil {
			http.Error(w, "invalid issue_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		params.IssueDate = &t
	}

	if req.ExpiryDate != nil {
		t, err := time.Parse(time.DateOnly, *req.ExpiryDate)
		if err != nil {
			http.Error(w, "invalid expiry_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		params.ExpiryDate = &t
	}

	params.Items = make([]budget.ItemParams, 0, len(req.Items))
	for _, it := range req.Items {
		params.Items = append(params.Items, it.toParams())
	}

	b, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, budget.ErrNotFound) {
			http.Error(w, "budget not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, budget.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, budget.ErrCustomerNameRequired),
		errors.Is(err, budget.ErrIssueDateRequired),
		errors.Is(err, budget.ErrInvalidStatus),
		errors.Is(err, budget.ErrInvalidExpiryDays),
		errors.Is(err, budget.ErrItemDescriptionRequired),
		errors.Is(err, budget.ErrNegativeUnitPrice):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
