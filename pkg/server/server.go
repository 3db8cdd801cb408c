// Package server exposes rendered host metrics over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/comfortablynick/sysinfo/pkg/log"
	"github.com/comfortablynick/sysinfo/pkg/report"
	"github.com/comfortablynick/sysinfo/pkg/uptime"
)

const shutdownTimeout = 10 * time.Second

// Defaults are the rendering choices used when a request does not set them.
type Defaults struct {
	Decimal     bool
	Celsius     bool
	Uptime      uptime.Policy
	LoadCount   int
	CPUInterval time.Duration
}

// MetricsServer serves NodeInfo snapshots and single metric lines.
type MetricsServer struct {
	echo     *echo.Echo
	reporter *report.Reporter
	defaults Defaults
	version  string
}

// NewMetricsServer builds a server with its routes registered.
func NewMetricsServer(reporter *report.Reporter, defaults Defaults, version string) *MetricsServer {
	ms := &MetricsServer{
		echo:     echo.New(),
		reporter: reporter,
		defaults: defaults,
		version:  version,
	}
	ms.setupRoutes()
	return ms
}

// Handler returns the HTTP handler, mainly for tests.
func (ms *MetricsServer) Handler() http.Handler {
	return ms.echo
}

// Start serves on addr until ctx is done or SIGINT/SIGTERM arrives, then
// shuts down gracefully.
func (ms *MetricsServer) Start(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", addr).
			Str("version", ms.version).
			Msg("Starting metrics server")

		if err := ms.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		log.Error().Err(err).Msg("Server startup failed")
		return err
	case <-quit:
	case <-ctx.Done():
	}

	return ms.Shutdown()
}

// Shutdown stops the server, waiting up to ten seconds for requests.
func (ms *MetricsServer) Shutdown() error {
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := ms.echo.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
		return err
	}

	log.Info().Msg("Server gracefully stopped")
	return nil
}

func (ms *MetricsServer) setupRoutes() {
	ms.echo.HideBanner = true
	ms.echo.HidePort = true

	ms.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogMethod:  true,
		LogURI:     true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Int("status", v.Status).
				Str("method", v.Method).
				Str("uri", v.URI).
				Dur("latency", v.Latency).
				Msg("Request")
			return nil
		},
	}))
	ms.echo.Use(middleware.Recover())

	ms.echo.GET("/version", ms.getVersion)
	ms.echo.GET("/node/info", ms.getNodeInfo)
	ms.echo.GET("/metric/:name", ms.getMetric)
}

func (ms *MetricsServer) getVersion(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"version": ms.version})
}
