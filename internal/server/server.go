package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ternarybob/dartview/internal/app"
	"github.com/ternarybob/dartview/internal/common"
)

// Fallbacks for unset or unparsable [server] timeouts
const (
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 90 * time.Second
	defaultIdleTimeout  = 60 * time.Second
)

// Server manages the HTTP server and routes
type Server struct {
	app    *app.App
	router *http.ServeMux
	server *http.Server
}

// New creates a new HTTP server with the given app
func New(application *app.App) *Server {
	s := &Server{
		app: application,
	}

	// Setup routes
	s.router = s.setupRoutes()

	cfg := application.Config.Server
	s.server = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.withMiddleware(s.router),
		ReadTimeout:  common.ParseDurationOr(cfg.ReadTimeout, defaultReadTimeout),
		WriteTimeout: common.ParseDurationOr(cfg.WriteTimeout, defaultWriteTimeout),
		IdleTimeout:  common.ParseDurationOr(cfg.IdleTimeout, defaultIdleTimeout),
	}

	return s
}

// Handler returns the router wrapped in the middleware chain
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := s.server.Addr

	s.app.Logger.Info().
		Str("address", addr).
		Dur("write_timeout", s.server.WriteTimeout).
		Msg("HTTP server starting")

	s.app.Logger.Info().
		Str("url", fmt.Sprintf("http://%s", addr)).
		Msg("Web UI available")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.app.Logger.Info().Msg("Shutting down HTTP server...")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.app.Logger.Info().Msg("HTTP server stopped")
	return nil
}
