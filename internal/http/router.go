package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/rogerio-castellano/inventory-dashboard/docs"
	"github.com/rogerio-castellano/inventory-dashboard/internal/http/handlers"
	rl "github.com/rogerio-castellano/inventory-dashboard/internal/http/rate_limiter"
	"github.com/rogerio-castellano/inventory-dashboard/internal/metrics"
	"github.com/rogerio-castellano/inventory-dashboard/internal/session"
)

type RouterConfig struct {
	SessionSecret []byte
	SessionMaxAge time.Duration

	OperatorUsername     string
	OperatorPasswordHash string

	// Limiter throttles the mutating routes. Nil disables throttling.
	Limiter *rl.Limiter

	// Health serves /health when set.
	Health http.Handler

	Logger *zap.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = zap.L()
	}
	maxAge := cfg.SessionMaxAge
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(log))
	r.Use(metrics.Middleware)

	r.Handle("/metrics", metrics.Handler())
	if cfg.Health != nil {
		r.Handle("/health", cfg.Health)
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Group(func(r chi.Router) {
		r.Use(BasicAuthMiddleware(cfg.OperatorUsername, cfg.OperatorPasswordHash))
		r.Use(session.Middleware(cfg.SessionSecret, maxAge))

		r.Get("/", handlers.PageHandler)
		r.Get("/export.csv", handlers.ExportProductsHandler)
		r.Get("/api/products", handlers.GetProductsHandler)
		r.Get("/api/dashboard", handlers.GetDashboardMetricsHandler)

		r.Group(func(r chi.Router) {
			if cfg.Limiter != nil {
				r.Use(cfg.Limiter.Middleware)
			}
			r.Post("/items", handlers.CreateItemHandler)
			r.Post("/items/update", handlers.UpdateItemHandler)
			r.Post("/items/delete", handlers.DeleteItemHandler)
			r.Post("/api/products/import", handlers.ImportProductsHandler)
		})
	})

	return r
}
