package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/emergent-company/atlas/internal/config"
	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/auth"
	"github.com/emergent-company/atlas/pkg/logger"
)

var corsConfig = middleware.CORSConfig{
	AllowOrigins:  []string{"*"},
	AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	ExposeHeaders: []string{echo.HeaderContentDisposition},
}

// health endpoints are polled often enough to drown the access log.
var healthPaths = map[string]bool{
	"/health":  true,
	"/healthz": true,
	"/ready":   true,
	"/metrics": true,
}

func requestLogger(log *slog.Logger, access *logger.HTTPLogger) echo.MiddlewareFunc {
	log = log.With(logger.Scope("http"))
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper:      func(c echo.Context) bool { return healthPaths[c.Request().URL.Path] },
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				level = slog.LevelWarn
				if apperror.Status(v.Error) >= http.StatusInternalServerError {
					level = slog.LevelError
				}
				attrs = append(attrs, logger.Error(v.Error))
			}
			log.LogAttrs(c.Request().Context(), level, "request", attrs...)
			access.LogRequest(v.RemoteIP, v.Method, v.URI, v.Status, v.Latency, v.UserAgent, v.RequestID)
			return nil
		},
	})
}

func recoverer(log *slog.Logger) echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Error("panic in handler",
				slog.String("path", c.Path()),
				logger.Error(err),
				slog.String("stack", string(stack)))
			return err
		},
	})
}

// writeLimiter throttles POST, PUT, PATCH and DELETE per client IP. Reads are never limited.
func writeLimiter(cfg config.RateLimitConfig) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool { return !auth.IsWrite(c.Request().Method) },
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.WritesPerSecond),
			Burst:     cfg.Burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) { return c.RealIP(), nil },
		DenyHandler: func(echo.Context, string, error) error {
			return apperror.ErrTooManyRequests
		},
		ErrorHandler: func(_ echo.Context, err error) error {
			return apperror.ErrBadRequest.WithInternal(err)
		},
	})
}
