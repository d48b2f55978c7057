// Package http serves the dashboard API: resource CRUD over the in-memory
// store, autocomplete suggestions, the streaming generation endpoint, health
// and metrics.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"mediadesk/internal/config"
	"mediadesk/internal/logging"
	"mediadesk/internal/observability"
	"mediadesk/internal/store"
)

// Server wraps the gin engine and the underlying http.Server.
type Server struct {
	cfg     config.ServerConfig
	engine  *gin.Engine
	http    *http.Server
	store   *store.Store
	gen     Generator
	logger  logging.Logger
	metrics *observability.Metrics
}

// Option configures a Server.
type Option func(*Server)

// WithLogger attaches a logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMetrics attaches request and mutation metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithGenerator replaces the default streaming generator.
func WithGenerator(gen Generator) Option {
	return func(s *Server) { s.gen = gen }
}

// New builds the server around a catalog store.
func New(cfg config.ServerConfig, st *store.Store, opts ...Option) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	s := &Server{
		cfg:    cfg,
		engine: engine,
		store:  st,
		gen:    NewRewriteGenerator(0),
		logger: logging.NewComponentLogger("HTTPServer"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrNop(s.logger)

	engine.Use(gin.Recovery())
	engine.Use(s.requestMetrics())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.AllowWebSockets = true
	engine.Use(cors.New(corsConfig))

	s.setupRoutes()

	s.http = &http.Server{
		Addr:        cfg.Addr(),
		Handler:     engine,
		ReadTimeout: 30 * time.Second,
		// No WriteTimeout: the generate endpoint streams for as long as the
		// generation runs.
	}
	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("listening on %s", s.cfg.Addr())
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down")
	return s.http.Shutdown(ctx)
}
