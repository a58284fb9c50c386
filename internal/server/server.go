// Package server provides the local preview HTTP server: it serves the docs
// directory, renders the README, and exposes health and metrics endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.home.luguber.info/inful/stylepub/internal/logfields"
)

// Options configures the preview server.
type Options struct {
	DocsDir    string
	ReadmePath string
	Port       int
	Metrics    bool
	Registry   *prom.Registry // required when Metrics is true
}

// Server serves the styleguide preview.
type Server struct {
	opts      Options
	srv       *http.Server
	startTime time.Time
}

// New constructs a preview server.
func New(opts Options) *Server {
	s := &Server{opts: opts, startTime: time.Now()}
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           s.handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.opts.DocsDir)))
	mux.HandleFunc("/readme", s.handleReadme)
	mux.HandleFunc("/files", s.handleFiles)
	mux.HandleFunc("/healthz", s.handleHealth)
	if s.opts.Metrics && s.opts.Registry != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.opts.Registry, promhttp.HandlerOpts{}))
	}
	return chain(slog.Default(), mux)
}

// Start runs the server until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	// Pre-bind so we fail fast on an occupied port instead of logging from the
	// serve goroutine after startup appeared successful.
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", s.srv.Addr, err)
	}

	slog.Info("Preview server listening",
		slog.String("addr", ln.Addr().String()),
		logfields.Path(s.opts.DocsDir),
		slog.Bool("metrics", s.opts.Metrics))

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("preview server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down preview server: %w", err)
	}

	slog.Info("Preview server stopped")
	return nil
}
