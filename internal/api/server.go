// Package api assembles the HTTP server: echo routing and middleware, the
// huma API surface, probes and the metrics endpoint.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/donaldgifford/product-extractor/api/openapi"
	"github.com/donaldgifford/product-extractor/internal/api/handlers"
	mw "github.com/donaldgifford/product-extractor/internal/api/middleware"
	"github.com/donaldgifford/product-extractor/internal/config"
)

const (
	apiTitle        = "Product Extractor API"
	apiPrefix       = "/api/"
	shutdownTimeout = 10 * time.Second
)

// ErrNotReady is reported by the readiness probe outside Run.
var ErrNotReady = errors.New("server not accepting requests")

// Server is the extraction HTTP server.
type Server struct {
	echo  *echo.Echo
	api   huma.API
	cfg   config.ServerConfig
	log   *slog.Logger
	ready atomic.Bool
}

// NewServer wires routes and middleware for cfg.
func NewServer(cfg *config.Config, extractor handlers.PageExtractor, log *slog.Logger, version string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(mw.RequestLog(log), mw.Metrics(), mw.Recovery(log))
	if cfg.RateLimit.Enabled() {
		limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit.PerSecond), cfg.RateLimit.Burst)
		e.Use(mw.RateLimit(limiter, apiPrefix))
	}

	s := &Server{echo: e, cfg: cfg.Server, log: log}

	health := handlers.NewHealthHandler(s)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	openapi.RegisterRoutes(e)

	s.api = humaecho.New(e, huma.DefaultConfig(apiTitle, version))
	handlers.RegisterPageInfoRoutes(s.api, handlers.NewPageInfoHandler(extractor, log))
	handlers.RegisterProfileRoutes(s.api)

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// OpenAPI returns the generated API description.
func (s *Server) OpenAPI() *huma.OpenAPI {
	return s.api.OpenAPI()
}

// Ping implements handlers.Pinger.
func (s *Server) Ping(context.Context) error {
	if !s.ready.Load() {
		return ErrNotReady
	}
	return nil
}

// Run serves until ctx is done, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	addr := s.cfg.Addr()
	errCh := make(chan error, 1)

	go func() {
		errCh <- s.echo.Start(addr)
	}()

	s.ready.Store(true)
	s.log.Info("server started", "addr", addr)

	select {
	case err := <-errCh:
		s.ready.Store(false)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("starting server: %w", err)
	case <-ctx.Done():
	}

	s.ready.Store(false)
	s.log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	s.log.Info("server stopped")
	return nil
}
