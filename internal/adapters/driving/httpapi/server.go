// Package httpapi exposes the analysis coordinator over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
	"github.com/custodia-labs/inkwell/internal/core/ports/driving"
	"github.com/custodia-labs/inkwell/internal/logger"
)

// maxBodyBytes bounds request bodies. A long chapter fits comfortably.
const maxBodyBytes = 4 << 20

// ErrMissingCoordinator is returned when no coordinator is configured.
var ErrMissingCoordinator = errors.New("httpapi: analysis coordinator is required")

// Config wires the server's collaborators.
type Config struct {
	// Coordinator is required.
	Coordinator driving.AnalysisCoordinator

	// Normalisers converts marked-up submissions into prose. Optional.
	Normalisers driven.NormaliserRegistry

	// Metrics serves GET /metrics. Optional.
	Metrics http.Handler

	// MCP is mounted at /mcp when set.
	MCP http.Handler
}

// Server serves the Inkwell HTTP API.
type Server struct {
	coordinator driving.AnalysisCoordinator
	normalisers driven.NormaliserRegistry
	router      chi.Router
}

// NewServer builds the router.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Coordinator == nil {
		return nil, ErrMissingCoordinator
	}

	s := &Server{
		coordinator: cfg.Coordinator,
		normalisers: cfg.Normalisers,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/content", s.handleContent)
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/state", s.handleState)
		r.Route("/suggestions/{id}", func(r chi.Router) {
			r.Post("/accept", s.handleAccept)
			r.Post("/dismiss", s.handleDismiss)
		})
	})
	r.Get("/healthz", s.handleHealthz)

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}
	if cfg.MCP != nil {
		r.Mount("/mcp", cfg.MCP)
	}

	s.router = r
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// requestLogger logs each request at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Debug("http: %s %s %d %s", r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}
