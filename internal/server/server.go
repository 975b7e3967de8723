// Package server runs an HTTP handler on a TCP listener and shuts it down
// gracefully when the run context is cancelled.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/hatif03/researcher/internal/config"
	"github.com/hatif03/researcher/internal/logger"
)

// Server wraps an *http.Server. A Server runs at most once.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	logger          *logger.Logger

	ready chan struct{}
	mu    sync.RWMutex
	addr  string
}

// New configures a server for handler. Nothing is bound until Run.
func New(handler http.Handler, cfg config.Server, log *logger.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Address,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
			ErrorLog:     newErrorLog(log),
		},
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          log,
		ready:           make(chan struct{}),
	}
}

// Run listens on the configured address and serves until ctx is cancelled,
// then drains in-flight requests within the shutdown timeout (zero means no
// limit). It returns nil after a clean shutdown.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("error listening on %q: %w", s.httpServer.Addr, err)
	}

	s.mu.Lock()
	s.addr = ln.Addr().String()
	s.mu.Unlock()
	close(s.ready)

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("address", ln.Addr().String()).Msg("HTTP server listening")
		if err := s.httpServer.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("HTTP server Serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down HTTP server")

	shutdownCtx := context.Background()
	if s.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(shutdownCtx, s.shutdownTimeout)
		defer cancel()
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server Shutdown: %w", err)
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}

// Ready is closed once the listener is bound.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr is the bound listener address, empty before Run binds.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}
