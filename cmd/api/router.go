package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/landing-leads/internal/config"
	"github.com/xavierca1/landing-leads/internal/infra/http/handlers"
	metrics "github.com/xavierca1/landing-leads/internal/infra/http/middleware"
)

type actionHandler interface {
	Handle(w http.ResponseWriter, r *http.Request)
}

type Routes struct {
	Leads     actionHandler
	Users     actionHandler
	Progress  actionHandler
	Analytics actionHandler
	Health    actionHandler
}

// NewRouter mounts every action endpoint under /api and under the legacy
// /database/*.php paths the landing pages still call.
func NewRouter(cfg *config.Config, routes Routes) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", handlers.UserIDHeader},
		MaxAge:         300,
	}))

	mount := func(h actionHandler, paths ...string) {
		for _, p := range paths {
			r.HandleFunc(p, h.Handle)
		}
	}

	mount(routes.Leads, "/api/leads", "/database/leads_manager.php")
	mount(routes.Users, "/api/users", "/database/users_manager.php")
	mount(routes.Progress, "/api/progress", "/database/progress_manager.php")
	mount(routes.Analytics, "/api/analytics", "/database/analytics_manager.php")

	r.Get("/health", routes.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
