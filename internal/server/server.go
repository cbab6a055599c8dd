// Package server exposes the layout pipeline as an HTTP service.
//
// Endpoints:
//
//	POST   /api/render        run the pipeline, return artifacts
//	POST   /api/layouts       compute and persist a layout, return its id
//	GET    /api/layouts       list stored layouts, newest first
//	GET    /api/layouts/{id}  fetch a stored layout
//	DELETE /api/layouts/{id}  remove a stored layout
//	GET    /healthz           liveness probe
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/spren9er/cactuz-sub000/pkg/pipeline"
	"github.com/spren9er/cactuz-sub000/pkg/store"
)

// Server wires the pipeline runner and layout store behind an HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// New creates a server. A nil store disables the /api/layouts endpoints'
// persistence backend and replaces it with an in-memory one.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Route("/layouts", func(r chi.Router) {
			r.Post("/", s.handleCreateLayout)
			r.Get("/", s.handleListLayouts)
			r.Get("/{id}", s.handleGetLayout)
			r.Delete("/{id}", s.handleDeleteLayout)
		})
	})
	return r
}

// ListenAndServe runs the server until the context is canceled, then shuts
// down gracefully with a short drain window.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}
