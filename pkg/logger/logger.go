// Package logger builds the process-wide slog logger and the helpers every
// package uses to attach a scope and an error to log lines.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("logger",
	fx.Provide(NewLogger),
	fx.Provide(NewHTTPLogger),
	fx.Provide(NewZapLogger),
)

// NewLogger creates the application logger. LOG_LEVEL selects the level
// (debug, info, warn, error; default info). GO_ENV=production switches to JSON output.
func NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(os.Getenv("LOG_LEVEL"))}

	var handler slog.Handler
	if os.Getenv("GO_ENV") == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewZapLogger returns the zap logger used by the goose migrator.
func NewZapLogger() (*zap.Logger, error) {
	if os.Getenv("GO_ENV") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// Scope tags a log line with the component that emitted it.
func Scope(name string) slog.Attr {
	return slog.String("scope", name)
}

// Error attaches an error to a log line.
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

// HTTPLogger appends one access-log line per request to HTTP_LOG_PATH.
// It does nothing when the variable is unset.
type HTTPLogger struct {
	mu   sync.Mutex
	file *os.File
}

// NewHTTPLogger opens the access log if one is configured.
func NewHTTPLogger(lc fx.Lifecycle, log *slog.Logger) *HTTPLogger {
	h := &HTTPLogger{}
	path := os.Getenv("HTTP_LOG_PATH")
	if path == "" {
		return h
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Warn("http access log disabled", slog.String("path", path), Error(err))
		return h
	}
	h.file = f

	if lc != nil {
		lc.Append(fx.StopHook(h.Close))
	}
	return h
}

// LogRequest writes a combined-style access line.
func (h *HTTPLogger) LogRequest(ip, method, uri string, status int, latency time.Duration, userAgent, requestID string) {
	if h == nil || h.file == nil {
		return
	}
	line := fmt.Sprintf("%s %s - [%s] \"%s %s\" %d %dms \"%s\" %s\n",
		time.Now().UTC().Format(time.RFC3339), ip, requestID, method, uri, status,
		latency.Milliseconds(), userAgent, requestID)

	h.mu.Lock()
	defer h.mu.Unlock()
	_, _ = h.file.WriteString(line)
}

// Close flushes and closes the access log.
func (h *HTTPLogger) Close() error {
	if h == nil || h.file == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	err := h.file.Close()
	h.file = nil
	return err
}
