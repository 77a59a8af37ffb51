// Package server serves the dashboard page and its JSON API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/yuin/goldmark"

	"github.com/komsit37/stockdash/pkg/stockdash/view"
)

type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server manages the HTTP server and routes.
type Server struct {
	controller *view.Controller
	logger     arbor.ILogger
	markdown   goldmark.Markdown
	router     *http.ServeMux
	server     *http.Server
}

// New creates a server rendering dashboards through controller.
func New(controller *view.Controller, logger arbor.ILogger, opts Options) *Server {
	s := &Server{
		controller: controller,
		logger:     logger,
		markdown:   newMarkdown(),
	}
	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routes wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return s.withMiddleware(s.router)
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.server.Addr).Msg("HTTP server starting")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info().Msg("HTTP server stopped")
	return nil
}
