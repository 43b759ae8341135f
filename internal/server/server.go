// Package server exposes workbook classification and export over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"github.com/ukaji3/sheetgroup-go/internal/config"
	"github.com/ukaji3/sheetgroup-go/internal/logger"
)

const shutdownTimeout = 10 * time.Second

// App is the HTTP application.
type App struct {
	Echo *echo.Echo
	cfg  *config.Config
}

// NewApp builds the application with middlewares and routes registered.
func NewApp(cfg *config.Config) *App {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	a := &App{Echo: e, cfg: cfg}
	a.RegisterMiddlewares()
	a.RegisterRoutes(NewHandler(cfg))
	return a
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	a.Echo.Use(requestContext)
	a.Echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	a.Echo.Use(middleware.Recover())
	if a.cfg.Server.BodyLimit != "" {
		a.Echo.Use(middleware.BodyLimit(a.cfg.Server.BodyLimit))
	}
}

func (a *App) RegisterRoutes(h *Handler) {
	a.Echo.GET("/healthz", h.HealthHandler)

	api := a.Echo.Group("/api/v1")
	api.POST("/sheets", h.SheetsHandler)
	api.POST("/classify", h.ClassifyHandler)
	api.POST("/export", h.ExportHandler)
	api.POST("/export/group", h.ExportGroupHandler)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.InfoLog(ctx, "listening on %s", a.cfg.Server.Addr)
		errCh <- a.Echo.Start(a.cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.InfoLog(ctx, "shutting down")
		return a.Echo.Shutdown(shutdownCtx)
	}
}

// requestContext carries the request id into the request context logger.
func requestContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Response().Header().Get(echo.HeaderXRequestID)
		req := c.Request()
		c.SetRequest(req.WithContext(logger.WithRequestID(req.Context(), id)))
		return next(c)
	}
}
