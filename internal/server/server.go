// Package server assembles the gin engine: middleware chain, routes and handlers.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/nulzo/project-tracker-api/internal/config"
	"github.com/nulzo/project-tracker-api/internal/server/middleware"
	"github.com/nulzo/project-tracker-api/internal/server/validator"
	"github.com/nulzo/project-tracker-api/internal/store"
	"go.uber.org/zap"
)

type Server struct {
	router  *gin.Engine
	config  *config.Config
	logger  *zap.Logger
	repo    store.Repository
	version string
}

// New wires the handlers to repo. The repository is opened once by the caller
// and shared by every request.
func New(cfg *config.Config, logger *zap.Logger, repo store.Repository, version string) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	validator.InitValidator()

	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(logger, "/health", "/readyz", cfg.Metrics.Path))
	engine.Use(ginzap.RecoveryWithZap(logger, true))
	engine.Use(cors.Default())

	if cfg.Metrics.Enabled {
		engine.Use(middleware.Metrics())
	}
	if cfg.Tracing.Enabled {
		engine.Use(middleware.Tracing(cfg.Tracing.ServiceName))
	}
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, logger)
		engine.Use(limiter.Middleware())
	}

	engine.Use(middleware.ErrorHandler(logger))

	s := &Server{
		router:  engine,
		config:  cfg,
		logger:  logger,
		repo:    repo,
		version: version,
	}

	s.SetupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// HTTPServer returns an http.Server bound to the configured port.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              ":" + s.config.Server.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
