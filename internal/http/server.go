// Package http exposes the work-session core as a JSON API.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tasker-app/tasker/internal/service"
	"go.uber.org/zap"
)

// Server provides HTTP endpoints for tasker.
type Server struct {
	echo     *echo.Echo
	sessions service.SessionService
	users    service.UserService
	logger   *zap.Logger
	config   *Config
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int

	// Location resolves yyyy-mm-dd range bounds.
	Location *time.Location
}

// Deps are the collaborators the server routes to.
type Deps struct {
	Sessions service.SessionService
	Users    service.UserService

	// Registry receives the HTTP collectors and backs /metrics.
	Registry *prometheus.Registry
}

// NewServer creates a new HTTP server.
func NewServer(deps Deps, logger *zap.Logger, cfg *Config) (*Server, error) {
	if deps.Sessions == nil || deps.Users == nil {
		return nil, fmt.Errorf("session and user services cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host: "127.0.0.1",
			Port: 8080,
		}
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}

	metrics, err := NewHTTPMetrics(deps.Registry)
	if err != nil {
		return nil, fmt.Errorf("registering http metrics: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(metrics.MetricsMiddleware())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// Resolve the status before logging it.
				c.Error(err)
			}

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			return nil
		}
	})

	s := &Server{
		echo:     e,
		sessions: deps.Sessions,
		users:    deps.Users,
		logger:   logger,
		config:   cfg,
	}
	s.registerRoutes(deps.Registry)
	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes(gatherer prometheus.Gatherer) {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := s.echo.Group("/api/v1")

	v1.POST("/users", s.handleCreateUser)
	v1.GET("/users", s.handleListUsers)
	v1.GET("/users/:id", s.handleGetUser)
	v1.DELETE("/users/:id", s.handleRemoveUser)
	v1.PATCH("/users/:id/hours", s.handleSetDailyHours)
	v1.PATCH("/users/:id/name", s.handleRenameUser)

	v1.POST("/users/:id/sessions", s.handleStartSession)
	v1.POST("/users/:id/sessions/:sessionId/stop", s.handleStopSession)
	v1.GET("/users/:id/sessions", s.handleListSessions)
	v1.GET("/users/:id/sessions/current", s.handleCurrentSession)
	v1.GET("/users/:id/sessions/today", s.handleTodaySessions)
	v1.GET("/users/:id/totals/daily", s.handleDailyTotals)
	v1.GET("/users/:id/totals/range", s.handleRangeTotal)

	v1.DELETE("/sessions/:sessionId", s.handleDeleteSession)
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server. It returns nil after a graceful shutdown.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
