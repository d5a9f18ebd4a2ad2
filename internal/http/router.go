package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrJamesThe3rd/wealthwise/internal/http/advice"
	"github.com/MrJamesThe3rd/wealthwise/internal/http/backup"
	"github.com/MrJamesThe3rd/wealthwise/internal/http/budget"
	"github.com/MrJamesThe3rd/wealthwise/internal/http/goal"
	"github.com/MrJamesThe3rd/wealthwise/internal/http/quote"
	"github.com/MrJamesThe3rd/wealthwise/internal/http/stats"
	"github.com/MrJamesThe3rd/wealthwise/internal/http/transaction"
)

// Handlers groups the versioned API handlers mounted by New.
type Handlers struct {
	Transactions *transaction.Handler
	Goals        *goal.Handler
	Budgets      *budget.Handler
	Categories   *budget.CategoryHandler
	Stats        *stats.Handler
	Advice       *advice.Handler
	Backup       *backup.Handler
	Quotes       *quote.Handler
}

type Options struct {
	CORSOrigins []string
	Timeout     time.Duration
}

func New(opts Options, v1 Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			v1.Transactions.Routes(r)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			v1.Goals.Routes(r)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			v1.Budgets.Routes(r)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			v1.Categories.Routes(r)
		})

		r.Route("/stats", v1.Stats.Routes)
		r.Route("/advice", v1.Advice.Routes)
		r.Route("/backup", v1.Backup.Routes)
		r.Route("/quotes", v1.Quotes.Routes)
	})

	return router
}
