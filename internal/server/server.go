// Package server is the host HTTP server plugins mount routes onto.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mthadley/magnet-plugin-sass/internal/config"
	derrors "github.com/mthadley/magnet-plugin-sass/internal/foundation/errors"
	"github.com/mthadley/magnet-plugin-sass/internal/logfields"
	"github.com/mthadley/magnet-plugin-sass/internal/plugin"
)

const (
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 60 * time.Second
)

// Options configures optional server wiring.
type Options struct {
	Logger *slog.Logger

	// MetricsHandler is mounted at /metrics when set.
	MetricsHandler http.Handler
}

// Server owns the chi router and the http.Server listening on it.
type Server struct {
	cfg          config.ServerConfig
	router       chi.Router
	logger       *slog.Logger
	errorAdapter *derrors.HTTPErrorAdapter
	startTime    time.Time

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
}

var _ plugin.Server = (*Server)(nil)

// New constructs the router with its middleware chain and built-in routes.
func New(cfg config.ServerConfig, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:          cfg,
		router:       chi.NewRouter(),
		logger:       logger,
		errorAdapter: derrors.NewHTTPErrorAdapter(logger),
		startTime:    time.Now(),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(Chain(logger, s.errorAdapter))

	s.router.Get("/healthz", s.handleHealth)
	if opts.MetricsHandler != nil {
		s.router.Method(http.MethodGet, "/metrics", opts.MetricsHandler)
	}
	return s
}

// Engine returns the router plugins mount handlers on.
func (s *Server) Engine() plugin.Engine {
	return s.router
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

// ListenAddr returns the bound address once Start has succeeded.
func (s *Server) ListenAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Start binds the listen address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.Addr())
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryRuntime, "http startup failed").
			WithContext("addr", s.Addr()).
			Build()
	}
	s.Serve(ln)
	return nil
}

// Serve serves on ln in the background.
func (s *Server) Serve(ln net.Listener) {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}

	s.mu.Lock()
	s.srv = srv
	s.listener = ln
	s.mu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", logfields.Error(err))
		}
	}()
	s.logger.Info("HTTP server started", logfields.Addr(ln.Addr().String()))
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	s.logger.Info("HTTP server stopped")
	return nil
}
