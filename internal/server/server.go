// Package server builds the catalog's echo instance and runs it under the fx lifecycle.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"

	"github.com/emergent-company/atlas/internal/config"
	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/auth"
	"github.com/emergent-company/atlas/pkg/logger"
	"github.com/emergent-company/atlas/pkg/metrics"
)

var Module = fx.Module("server",
	fx.Provide(NewEcho),
	fx.Invoke(StartServer),
)

type EchoParams struct {
	fx.In

	Config     *config.Config
	Log        *slog.Logger
	HTTPLogger *logger.HTTPLogger
	Auth       *auth.Middleware
}

// NewEcho returns the echo instance every domain module registers its routes on.
// Middleware order: request id, access log, panic recovery, metrics, write
// throttling, then the write guard.
func NewEcho(p EchoParams) *echo.Echo {
	e := echo.New()
	e.Debug = p.Config.Debug
	e.HideBanner = true
	e.HidePort = !p.Config.Debug
	e.HTTPErrorHandler = apperror.HTTPErrorHandler(p.Log)

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.CORSWithConfig(corsConfig))
	e.Use(middleware.RequestID())
	e.Use(requestLogger(p.Log, p.HTTPLogger))
	e.Use(recoverer(p.Log))
	e.Use(metrics.Middleware())
	if p.Config.RateLimit.Enabled() {
		e.Use(writeLimiter(p.Config.RateLimit))
	}
	e.Use(p.Auth.RequireEditor())

	e.GET("/metrics", metrics.Handler())
	return e
}

// StartServer listens on SERVER_ADDRESS:SERVER_PORT once the app starts and
// drains in-flight requests on stop.
func StartServer(lc fx.Lifecycle, e *echo.Echo, cfg *config.Config, log *slog.Logger) {
	log = log.With(logger.Scope("server"))
	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.ServerAddress, strconv.Itoa(cfg.ServerPort)),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("listening", slog.String("addr", srv.Addr), slog.String("environment", cfg.Environment))
			go func() {
				if err := e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", logger.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
			defer cancel()
			log.Info("draining http server", slog.Duration("timeout", cfg.ShutdownTimeout))
			return e.Shutdown(ctx)
		},
	})
}
