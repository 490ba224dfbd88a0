package report

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	txHttp "github.com/MrJamesThe3rd/salesdash/internal/http/transaction"
	"github.com/MrJamesThe3rd/salesdash/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/statistics", h.statistics)
	r.Get("/bar_chart", h.barChart)
	r.Get("/pie_chart", h.pieChart)
	r.Get("/combined_data", h.combined)
}

func (h *Handler) statistics(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	stats, err := h.svc.Statistics(r.Context(), month)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to calculate statistics", "month", month, "error", err)
		http.Error(w, "Error calculating statistics", http.StatusInternalServerError)

		return
	}

	writeJSON(w, toStatisticsResponse(stats))
}

func (h *Handler) barChart(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	entries, err := h.svc.BarChart(r.Context(), month)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to build bar chart", "month", month, "error", err)
		http.Error(w, "Error generating bar chart data", http.StatusInternalServerError)

		return
	}

	writeJSON(w, toBarChartResponse(entries))
}

func (h *Handler) pieChart(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	entries, err := h.svc.PieChart(r.Context(), month)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to build pie chart", "month", month, "error", err)
		http.Error(w, "Error generating pie chart data", http.StatusInternalServerError)

		return
	}

	writeJSON(w, toPieChartResponse(entries))
}

func (h *Handler) combined(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	c, err := h.svc.Combined(r.Context(), month)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to fetch combined data", "month", month, "error", err)
		http.Error(w, "Error fetching combined data", http.StatusInternalServerError)

		return
	}

	writeJSON(w, combinedResponse{
		Transactions: txHttp.ToListResponse(c.Transactions),
		Statistics:   toStatisticsResponse(c.Statistics),
		BarChart:     toBarChartResponse(c.BarChart),
		PieChart:     toPieChartResponse(c.PieChart),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
