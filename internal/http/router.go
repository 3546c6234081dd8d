package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authHandler "github.com/MrJamesThe3rd/tally/internal/http/auth"
	ledgerHandler "github.com/MrJamesThe3rd/tally/internal/http/ledger"
	"github.com/MrJamesThe3rd/tally/internal/http/middleware"
)

func New(
	authV1 *authHandler.Handler,
	ledgerV1 *ledgerHandler.Handler,
	tokens middleware.TokenParser,
) http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(chimiddleware.AllowContentType("application/json"))
			authV1.PublicRoutes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens))

			r.Route("/debts", func(r chi.Router) {
				ledgerV1.DebtRoutes(r)
			})

			r.Route("/people", func(r chi.Router) {
				ledgerV1.PeopleRoutes(r)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Use(chimiddleware.AllowContentType("application/json"))
				authV1.SettingsRoutes(r)
			})
		})
	})

	return router
}
