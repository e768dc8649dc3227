package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andrefarias/budgetmaster/internal/catalog"
	"github.com/andrefarias/budgetmaster/internal/importer"
)

type Handler struct {
	parser     *importer.Parser
	catalogSvc *catalog.Service
}

func NewHandler(parser *importer.Parser, catalogSvc *catalog.Service) *Handler {
	return &Handler{
		parser:     parser,
		catalogSvc: catalogSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.parser.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := importResponse{}

	for _, p := range params {
		if _, err := h.catalogSvc.Create(r.Context(), p); err != nil {
			resp.Skipped++
			resp.Errors = append(resp.Errors, p.Name+": "+err.Error())

			continue
		}

		resp.Imported++
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
