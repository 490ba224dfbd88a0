package importseed

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/salesdash/internal/importer"
)

const (
	msgInitialized = "Database initialized with seed data"
	msgSkipped     = "Database already initialized, seed skipped"
	msgFailed      = "Error initializing database"
)

type Handler struct {
	importSvc *importer.Service
}

func NewHandler(importSvc *importer.Service) *Handler {
	return &Handler{importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/initialize_database", h.initialize)
}

func (h *Handler) initialize(w http.ResponseWriter, r *http.Request) {
	result, err := h.importSvc.Initialize(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to initialize database", "error", err)
		http.Error(w, msgFailed, http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	msg := msgInitialized
	if result.Skipped {
		msg = msgSkipped
	}

	if _, err := w.Write([]byte(msg)); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
