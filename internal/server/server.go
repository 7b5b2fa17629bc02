// Package server exposes the comment service to the page widget and the
// dashboard over HTTP, and serves the kanban board over SSH.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/sitenotes/sitenotes/internal/logging"
)

const shutdownTimeout = 30 * time.Second

// HTTPServer serves the action endpoint until its context is cancelled
type HTTPServer struct {
	addr       string
	httpServer *http.Server
}

// NewHTTPServer wraps handler. When allowedOrigins is set, cross-origin
// requests from those origins (the site running the widget) are allowed.
func NewHTTPServer(addr string, handler http.Handler, allowedOrigins []string) *HTTPServer {
	if len(allowedOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedOrigins: allowedOrigins,
			MaxAge:         600,
		}).Handler(handler)
	}

	return &HTTPServer{
		addr: addr,
		httpServer: &http.Server{
			Handler:           handler,
			IdleTimeout:       120 * time.Second,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
		},
	}
}

// Serve listens on the configured address and blocks until ctx is done,
// then shuts down gracefully
func (s *HTTPServer) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.ServeListener(ctx, listener)
}

// ServeListener is Serve on an existing listener
func (s *HTTPServer) ServeListener(ctx context.Context, listener net.Listener) error {
	logging.Logger.Info("Starting HTTP server", "address", listener.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	logging.Logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	logging.Logger.Info("HTTP server stopped")
	return nil
}
