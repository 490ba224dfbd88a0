package transaction

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/salesdash/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/list_transactions", h.list)
}

// ParseListParams reads month, search_text, page and per_page from the query.
// Non-numeric paging values are left zero so Normalize applies the defaults.
func ParseListParams(r *http.Request) transaction.ListParams {
	q := r.URL.Query()

	params := transaction.ListParams{
		Month:  q.Get("month"),
		Search: q.Get("search_text"),
	}

	if n, err := strconv.Atoi(q.Get("page")); err == nil {
		params.Page = n
	}

	if n, err := strconv.Atoi(q.Get("per_page")); err == nil {
		params.PerPage = n
	}

	return params
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.List(r.Context(), ParseListParams(r))
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list transactions", "error", err)
		http.Error(w, "Error listing transactions", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(ToListResponse(result)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
