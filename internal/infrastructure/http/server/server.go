// Package server provides the HTTP server for the planner REST API
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nutriplan/v2/internal/infrastructure/config"
	"github.com/nutriplan/v2/internal/infrastructure/http/handlers"
	"github.com/nutriplan/v2/internal/infrastructure/http/middleware"
	"github.com/nutriplan/v2/internal/infrastructure/monitoring"
	"github.com/nutriplan/v2/internal/ports/inbound"
)

// Server represents the HTTP server
type Server struct {
	config         *config.Config
	logger         *zap.Logger
	router         *chi.Mux
	server         *http.Server
	plannerService inbound.PlannerService
	metrics        *monitoring.MetricsCollector
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	plannerService inbound.PlannerService,
	metrics *monitoring.MetricsCollector,
) *Server {
	s := &Server{
		config:         cfg,
		logger:         logger,
		plannerService: plannerService,
		metrics:        metrics,
	}

	s.router = s.setupRouter()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics(s.metrics))
	r.Use(chimiddleware.Timeout(s.config.Server.ReadTimeout + s.config.Server.WriteTimeout))

	h := handlers.NewAPIHandlers(s.plannerService, s.metrics, s.logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/plans", func(r chi.Router) {
			r.Get("/", h.ListPlans)
			r.Post("/", h.GeneratePlan)
			r.Get("/{id}", h.GetPlan)
			r.Delete("/{id}", h.DeletePlan)
			r.Post("/{id}/swap", h.SwapMeal)
		})
	})

	r.Get("/health", h.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
