// Package server wires the HTTP surface: routing, middleware, static
// assets, health and metrics endpoints, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"activity-signup/internal/activities"
	"activity-signup/internal/common/config"
	apperrors "activity-signup/internal/common/errors"
	"activity-signup/internal/common/logger"
	"activity-signup/internal/common/observability"
	"activity-signup/internal/models"
)

const indexPath = "/static/index.html"

type Server struct {
	echo            *echo.Echo
	address         string
	shutdownTimeout time.Duration
	logger          logger.Logger
}

// Dependencies are the collaborators the server routes to.
type Dependencies struct {
	Registry *activities.Registry
	Handler  *activities.Handler
	Obs      *observability.Observability
	Gatherer prometheus.Gatherer
	Logger   logger.Logger
}

func New(cfg config.ServerConfig, deps Dependencies) *Server {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.WithFields(map[string]interface{}{"component": "http"})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = config.GetDuration(cfg.ReadTimeout)
	e.Server.WriteTimeout = config.GetDuration(cfg.WriteTimeout)
	e.HTTPErrorHandler = apperrors.NewErrorHandler(log).HandleHTTPError

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(log))
	if deps.Obs != nil {
		e.Use(deps.Obs.Middleware())
	}

	e.GET("/healthz", func(c echo.Context) error {
		n := 0
		if deps.Registry != nil {
			n = deps.Registry.Len()
		}
		return c.JSON(http.StatusOK, models.HealthResponse{Status: "ok", Activities: n})
	})

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	if cfg.StaticDir != "" {
		e.Static("/static", cfg.StaticDir)
		e.GET("/", func(c echo.Context) error {
			return c.Redirect(http.StatusTemporaryRedirect, indexPath)
		})
	}
	if deps.Handler != nil {
		deps.Handler.Register(e)
	}

	shutdownTimeout := config.GetDuration(cfg.ShutdownTimeout)
	if shutdownTimeout <= 0 {
		shutdownTimeout = 5 * time.Second
	}

	return &Server{
		echo:            e,
		address:         cfg.Address,
		shutdownTimeout: shutdownTimeout,
		logger:          log,
	}
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", map[string]interface{}{"address": s.address})
		if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	s.logger.Info("http server shutting down", nil)
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func requestLogger(log logger.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := map[string]interface{}{
				"method":    v.Method,
				"uri":       v.URI,
				"status":    v.Status,
				"latencyMs": v.Latency.Milliseconds(),
				"requestId": v.RequestID,
			}
			if v.Error != nil {
				fields["error"] = v.Error.Error()
			}
			log.Debug("request", fields)
			return nil
		},
	})
}
