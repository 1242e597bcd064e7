package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gp-wales/internal/analysis"
	"github.com/gp-wales/internal/config"
	"github.com/gp-wales/internal/web/handlers"
	"github.com/gp-wales/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	config     config.WebConfig
	httpServer *http.Server
	router     *mux.Router
	handler    http.Handler
	registry   *prometheus.Registry
}

// NewServer builds the router over an existing store and analysis service.
func NewServer(cfg config.WebConfig, st handlers.PracticeStore, svc *analysis.Service) *Server {
	s := &Server{
		config:   cfg,
		registry: prometheus.NewRegistry(),
	}
	s.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	s.setupRoutes(st, svc)

	// CORS sits outside the router: OPTIONS preflights match no route.
	s.handler = middleware.CORS()(s.router)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(st handlers.PracticeStore, svc *analysis.Service) {
	s.router = mux.NewRouter()

	apiHandler := &handlers.APIHandler{Resolver: svc.Resolver(), Analysis: svc}
	practicesHandler := &handlers.PracticesHandler{Store: st, Analysis: svc, Resolver: svc.Resolver()}
	exportHandler := &handlers.ExportHandler{Analysis: svc}

	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/resolve", apiHandler.Resolve).Methods("GET")
	api.HandleFunc("/authorities", apiHandler.Authorities).Methods("GET")
	api.HandleFunc("/counties", apiHandler.Counties).Methods("GET")

	api.HandleFunc("/practices", practicesHandler.List).Methods("GET")
	api.HandleFunc("/practices/{id}", practicesHandler.Get).Methods("GET")
	api.HandleFunc("/practices/{id}/size", practicesHandler.Size).Methods("GET")
	api.HandleFunc("/practices/{id}/drugs", practicesHandler.TopDrugs).Methods("GET")

	api.HandleFunc("/export/counties.xlsx", exportHandler.Counties).Methods("GET")

	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods("GET")

	metrics := middleware.NewMetrics(s.registry)
	s.router.Use(metrics.Middleware())
	s.router.Use(middleware.RequestLogging())

	if s.config.APIKey != "" {
		api.Use(middleware.Authentication(s.config.APIKey))
	}
}

// Handler is the full request handler, router plus CORS.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		fmt.Printf("Starting server on http://%s\n", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	fmt.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	fmt.Println("Server stopped")
	return nil
}
