// Package server runs the HTTP host with graceful shutdown.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// Server manages the HTTP server lifecycle.
type Server struct {
	config *Config
	server *http.Server
	logger *slog.Logger
}

// New creates a new server instance.
func New(config *Config, logger *slog.Logger) *Server {
	return &Server{
		config: config,
		server: &http.Server{
			Addr:              config.Addr(),
			ReadTimeout:       config.ReadTimeout,
			ReadHeaderTimeout: config.ReadTimeout,
			WriteTimeout:      config.WriteTimeout,
			IdleTimeout:       config.IdleTimeout,
			MaxHeaderBytes:    config.MaxHeaderBytes,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		logger: logger,
	}
}

// RegisterHandler sets the HTTP handler for the server.
//
// This should be called before starting the server.
func (s *Server) RegisterHandler(handler http.Handler) {
	s.server.Handler = handler
}

// Run listens on the configured address and serves until ctx is done,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down within the
// configured shutdown timeout. cleanup hooks run before shutdown.
//
// Returns nil after a graceful shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener, cleanup ...func()) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Debug("Starting HTTP server", "addr", ln.Addr().String())
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.logger.Error("HTTP server error", "addr", ln.Addr().String(), "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}
	s.logger.Debug("Shutdown signal received")

	for _, fn := range cleanup {
		fn()
	}

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown gracefully shuts down the server, waiting for active
// connections until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Debug("Shutting down server")
	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
		return err
	}
	s.logger.Debug("Server stopped gracefully")
	return nil
}
