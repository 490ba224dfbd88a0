package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/salesdash/internal/http/health"
	"github.com/MrJamesThe3rd/salesdash/internal/http/importseed"
	"github.com/MrJamesThe3rd/salesdash/internal/http/report"
	"github.com/MrJamesThe3rd/salesdash/internal/http/transaction"
)

type Options struct {
	AllowedOrigins []string
}

func New(
	opts Options,
	healthH *health.Handler,
	seedH *importseed.Handler,
	transactionsH *transaction.Handler,
	reportH *report.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	healthH.Routes(router)
	seedH.Routes(router)

	router.Group(func(r chi.Router) {
		r.Use(middleware.NoCache)
		transactionsH.Routes(r)
		reportH.Routes(r)
	})

	return router
}
