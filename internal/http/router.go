package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mrbl-app/mrbl/internal/auth"
	invoiceHandler "github.com/mrbl-app/mrbl/internal/http/invoice"
	orderHandler "github.com/mrbl-app/mrbl/internal/http/order"
	scanHandler "github.com/mrbl-app/mrbl/internal/http/scan"
	shopHandler "github.com/mrbl-app/mrbl/internal/http/shop"
	splitHandler "github.com/mrbl-app/mrbl/internal/http/split"
)

func New(
	jwtSecret []byte,
	ordersV1 *orderHandler.Handler,
	scansV1 *scanHandler.Handler,
	splitsV1 *splitHandler.Handler,
	invoicesV1 *invoiceHandler.Handler,
	shopsV1 *shopHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*.mrbl.app", "http://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(jwtSecret))

		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			ordersV1.Routes(r)
		})

		r.Route("/scans", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			scansV1.Routes(r)
		})

		r.Route("/splits", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			r.Use(auth.RequireRole(auth.RoleAdmin))
			splitsV1.Routes(r)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			invoicesV1.Routes(r)
		})

		r.Route("/shops", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			shopsV1.Routes(r)
		})
	})

	return router
}
