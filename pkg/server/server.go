// Package server exposes the layout pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz     liveness probe, returns "ok"
//	GET  /v1/formats  supported output formats as JSON
//	POST /v1/layout   solve a tree document
//
// POST /v1/layout accepts a TOML (Content-Type: application/toml) or JSON
// document body. Query parameters:
//
//	width, height  viewport (default 800x600)
//	format         json (default), dot or svg
//	place          assign positions (true/false)
//	detailed       detailed DOT/SVG labels (true/false)
//
// Errors are returned as JSON with a machine-readable code:
//
//	{"error": {"code": "INVALID_SIZING", "message": "$.children[1]: width: ..."}}
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/flow/pkg/pipeline"
)

// Defaults for server limits.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultMaxBodySize = 1 << 20
)

// Server serves the layout API.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	timeout time.Duration
	maxBody int64
}

// Option configures a Server.
type Option func(*Server)

// WithTimeout bounds the time spent on a single request.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// WithMaxBodySize limits the size of request documents in bytes.
func WithMaxBodySize(n int64) Option {
	return func(s *Server) { s.maxBody = n }
}

// New creates a Server backed by runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:  runner,
		logger:  logger,
		timeout: DefaultTimeout,
		maxBody: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))
	r.Use(observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/formats", s.handleFormats)
		r.Post("/layout", s.handleLayout)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != http.ErrServerClosed {
		return err
	}
	return nil
}
