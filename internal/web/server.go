// Package web serves the browser UI: upload a dataset, run the
// pipeline, view and download the generated charts.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/KaramelBytes/autoviz/internal/config"
	"github.com/KaramelBytes/autoviz/internal/logging"
)

// Server is the HTTP server for the AutoViz application.
type Server struct {
	cfg    *config.Global
	store  *runStore
	router *chi.Mux
	server *http.Server
}

// NewServer creates a Server with routes and middleware configured.
func NewServer(cfg *config.Global) *Server {
	s := &Server{
		cfg:    cfg,
		store:  newRunStore(time.Duration(cfg.RunRetentionMin) * time.Minute),
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(120 * time.Second))
	s.router.Use(requestLogger)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Post("/upload", s.handleUpload)
	s.router.Get("/run/{runID}", s.handleResults)
	s.router.Get("/run/{runID}/plot/{index}", s.handlePlot)
	s.router.Get("/run/{runID}/report.zip", s.handleDownloadZip)
	s.router.Get("/run/{runID}/report.html", s.handleDownloadHTML)
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// requestLogger logs each request with its chi request ID.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logging.FromContext(r.Context()).Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
