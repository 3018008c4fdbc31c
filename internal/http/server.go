// Package http exposes the study planner over a JSON API shaped like the
// original backend functions.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexanderramin/studyweek/internal/metrics"
	"github.com/alexanderramin/studyweek/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server provides the HTTP endpoints for studyweek.
type Server struct {
	echo      *echo.Echo
	reflect   service.ReflectService
	sessions  service.SessionService
	dashboard service.DashboardService
	metrics   *metrics.Metrics
	gatherer  prometheus.Gatherer
	logger    *zap.Logger
	config    *Config
	now       func() time.Time
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// Services groups the use cases the API serves.
type Services struct {
	Reflect   service.ReflectService
	Sessions  service.SessionService
	Dashboard service.DashboardService
}

// NewServer wires routes and middleware. m may be nil; gatherer may be nil
// when /metrics should not be served.
func NewServer(svcs Services, logger *zap.Logger, m *metrics.Metrics, gatherer prometheus.Gatherer, cfg *Config) (*Server, error) {
	if svcs.Reflect == nil || svcs.Sessions == nil || svcs.Dashboard == nil {
		return nil, fmt.Errorf("reflect, sessions and dashboard services are required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host: "localhost",
			Port: 8080,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:      e,
		reflect:   svcs.Reflect,
		sessions:  svcs.Sessions,
		dashboard: svcs.Dashboard,
		metrics:   m,
		gatherer:  gatherer,
		logger:    logger,
		config:    cfg,
		now:       time.Now,
	}

	e.HTTPErrorHandler = s.handleError
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{"authorization", "x-client-info", "apikey", "content-type"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))
	e.Use(s.observeRequests)

	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	if s.gatherer != nil {
		s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}

	fn := s.echo.Group("/functions/v1")
	fn.POST("/weekly_reflect", s.handleWeeklyReflect)
	fn.POST("/log_pomodoro", s.handleLogPomodoro)
	fn.POST("/log_manual_progress", s.handleLogManualProgress)
	fn.POST("/get_dashboard_data", s.handleDashboard)
}

// Handler exposes the router, mainly for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks serving on the configured address. It returns nil after a
// graceful Shutdown.
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

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
