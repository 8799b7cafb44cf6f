package router

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/palaver-dev/palaver/internal/middleware"
	"github.com/palaver-dev/palaver/internal/middleware/metrics"
	"github.com/palaver-dev/palaver/internal/setup"
)

// New wires all routes. Reads are public; mutations need a valid token and
// moderation lives under /v1/admin behind the admin gate.
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(metrics.Middleware)
	r.Use(mw.SecurityHeaders(false))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Config.Public.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/healthz", h.Health)
	r.Get("/readyz", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		r.Get("/threads", h.ListThreads)
		r.Get("/threads/{thread}", h.GetThread)
		r.Get("/threads/{thread}/replies", h.ListReplies)
		r.Get("/replies/{reply}", h.GetReply)

		r.Group(func(r chi.Router) {
			r.Use(authMw.RequireAuth())

			r.Post("/threads", h.CreateThread)
			r.Put("/threads/{thread}", h.EditThread)
			r.Post("/threads/{thread}/replies", h.CreateReply)
			r.Put("/replies/{reply}", h.EditReply)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authMw.RequireAdmin())

			r.Delete("/threads/{thread}", h.DeleteThread)
			r.Delete("/replies/{reply}", h.DeleteReply)
			r.Post("/users/{user}/promote", h.PromoteUser)
			r.Get("/users", h.ListUsers)
		})
	})

	return r
}
