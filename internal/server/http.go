package server

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/swvikum/cake-bucket-sync/internal/core/port"
	"github.com/swvikum/cake-bucket-sync/internal/handler"
	"github.com/swvikum/cake-bucket-sync/internal/metrics"
)

type HTTPServer struct {
	echo *echo.Echo
}

func NewHTTPServer(syncService port.SyncService, cronSecret string, validate *validator.Validate) *HTTPServer {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(metrics.Middleware())

	syncHandler := handler.NewCalendarSyncHandler(syncService, cronSecret, validate)

	e.GET("/health", healthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.POST("/api/sync/calendar", syncHandler.Handle())

	return &HTTPServer{
		echo: e,
	}
}

func healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "cake-bucket-sync",
	})
}

func (s *HTTPServer) Start(address string) error {
	log.Infof("Starting HTTP server on %s", address)
	return s.echo.Start(address)
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	log.Info("Shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}
