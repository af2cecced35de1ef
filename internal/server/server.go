// Package server exposes thumbnail resolution over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/arugacyber/thumbnail"
)

const shutdownTimeout = 10 * time.Second

// App wires a thumbnail.Config to an echo router.
type App struct {
	Echo   *echo.Echo
	Thumbs *thumbnail.Config
	Addr   string
}

// New builds the router. Call Start to serve on addr.
func New(thumbs *thumbnail.Config, addr string) *App {
	a := &App{
		Echo:   echo.New(),
		Thumbs: thumbs,
		Addr:   addr,
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

func (a *App) setupMiddleware() {
	e := a.Echo

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("server: request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))

	e.Use(middleware.Recover())
}

func (a *App) setupRoutes() {
	e := a.Echo
	e.GET("/healthz", handleHealth)
	e.GET("/thumbnail", a.handleThumbnail)
	e.GET("/thumbnail/article", a.handleArticle)
	e.GET("/catalog", a.handleCatalog)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (a *App) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server: listening", "addr", a.Addr)
		if err := a.Echo.Start(a.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return a.Echo.Shutdown(shutdownCtx)
}

func (a *App) catalog() *thumbnail.Catalog {
	if a.Thumbs.Catalog != nil {
		return a.Thumbs.Catalog
	}
	return thumbnail.DefaultCatalog()
}
