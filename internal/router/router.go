// Package router sets up all HTTP routes and middleware chains for the
// DevInsights API. Public blog reads, protected user endpoints, admin
// operations, and the rate-limited benchmark group each get their own
// middleware stack.
package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"devinsights/internal/auth"
	"devinsights/internal/config"
	"devinsights/internal/handlers"
	"devinsights/internal/middleware"
)

// Handlers bundles the handler groups the router wires up.
type Handlers struct {
	System     *handlers.System
	Blog       *handlers.Blog
	Comments   *handlers.Comments
	Admin      *handlers.Admin
	Benchmarks *handlers.Benchmarks
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(cfg *config.Config, verifier *auth.Verifier, h Handlers) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.Handler(corsOptions(cfg)))
	r.Use(middleware.Authenticate(verifier))

	r.Get("/health", h.System.Health)
	r.Get("/", h.System.Index)

	r.Route("/api", func(r chi.Router) {
		r.Get("/auth/config", h.System.AuthConfig)

		// Public blog reads. Anonymous requests never fail here due to
		// a bad token — Authenticate already downgraded them.
		r.Get("/categories", h.Blog.Categories)
		r.Get("/posts/{category}", h.Blog.PostsByCategory)
		r.Get("/post/{id}", h.Blog.PostBySlug)
		r.Get("/post/{id}/comments", h.Comments.List)

		// Authenticated endpoints.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/post/{id}/comments", h.Comments.Create)
			r.Get("/user/profile", handlers.Profile)
		})

		// Admin endpoints.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole("admin"))
			r.Get("/admin/users", h.Admin.Users)
			r.Post("/admin/cache/purge", h.Admin.PurgeCache)
		})

		// Benchmark endpoints — rate limited per IP, since each request
		// deliberately burns resources.
		r.Route("/benchmark", func(r chi.Router) {
			limiter := middleware.NewRateLimiter(30, time.Minute)
			r.Use(limiter.Middleware)

			r.Get("/health", h.Benchmarks.Health)
			r.Get("/cpu", h.Benchmarks.CPU)
			r.Post("/cpu", h.Benchmarks.CPU)
			r.Get("/memory", h.Benchmarks.Memory)
			r.Post("/memory", h.Benchmarks.Memory)
			r.Get("/latency", h.Benchmarks.Latency)
			r.Post("/latency", h.Benchmarks.Latency)
		})
	})

	r.NotFound(handlers.NotFound)

	return r
}

// corsOptions builds the CORS policy: the configured frontend origin is
// always allowed; development additionally allows local origins.
func corsOptions(cfg *config.Config) cors.Options {
	return cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			if origin == cfg.FrontendURL {
				return true
			}
			if cfg.IsDev() && (strings.Contains(origin, "localhost") ||
				strings.Contains(origin, "127.0.0.1") ||
				strings.Contains(origin, "192.168.")) {
				return true
			}
			return false
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}
