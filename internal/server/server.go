// Package server wires the dashboard routes and middleware onto net/http.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/bobmcallan/vire-dashboard/internal/app"
	"github.com/bobmcallan/vire-dashboard/internal/common"
)

const (
	readTimeout = 30 * time.Second
	// Sparkline rendering and the simulated provider delay both count
	// against the write deadline.
	writeTimeout = 60 * time.Second
	idleTimeout  = 120 * time.Second
)

// Server serves the dashboard API and the MCP endpoint.
type Server struct {
	app    *app.App
	router *http.ServeMux
	server *http.Server
	logger *common.Logger
}

// New builds the server for application. It does not start listening.
func New(application *app.App) *Server {
	s := &Server{
		app:    application,
		logger: application.Logger,
	}
	s.router = s.setupRoutes()

	cfg := application.Config.Server
	s.server = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      s.withMiddleware(s.router),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return s
}

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info().
		Str("address", s.server.Addr).
		Str("provider", s.app.Config.Provider.Source).
		Msg("dashboard listening")

	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("dashboard server: %w", err)
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("dashboard shutdown: %w", err)
	}
	s.logger.Info().Msg("dashboard stopped")
	return nil
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}
