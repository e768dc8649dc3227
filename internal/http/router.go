package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/andrefarias/budgetmaster/internal/http/budget"
	"github.com/andrefarias/budgetmaster/internal/http/catalog"
	"github.com/andrefarias/budgetmaster/internal/http/home"
	"github.com/andrefarias/budgetmaster/internal/http/importcsv"
)

func New(
	budgetsV1 *budget.Handler,
	productsV1 *catalog.Handler,
	importV1 *importcsv.Handler,
	dashboardV1 *home.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/budgets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			budgetsV1.Routes(r)
		})

		r.Route("/products", func(r chi.Router) {
			r.Route("/import", importV1.Routes)
			productsV1.Routes(r)
		})

		r.Route("/dashboard", dashboardV1.Routes)
	})

	return router
}
