package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"indistock/internal/interfaces"
	"indistock/internal/logger"
	"indistock/internal/store"
)

// Server manages the HTTP server and routes
type Server struct {
	cfg    *store.Config
	news   interfaces.NewsService
	quotes interfaces.QuoteService
	router *http.ServeMux
	server *http.Server
	start  time.Time
}

// New creates the HTTP API server.
func New(cfg *store.Config, news interfaces.NewsService, quotes interfaces.QuoteService) *Server {
	s := &Server{
		cfg:    cfg,
		news:   news,
		quotes: quotes,
		start:  time.Now(),
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      s.withMiddleware(s.router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the full handler chain, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	logger.Info(ctx, "HTTP server starting", "address", s.cfg.Server.Addr)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info(ctx, "Shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info(ctx, "HTTP server stopped")
	return nil
}
