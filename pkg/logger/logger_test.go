package logger

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":         slog.LevelInfo,
		"info":     slog.LevelInfo,
		"DEBUG":    slog.LevelDebug,
		" debug ":  slog.LevelDebug,
		"warn":     slog.LevelWarn,
		"Warning":  slog.LevelWarn,
		"error":    slog.LevelError,
		"verbose":  slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), "LOG_LEVEL=%q", in)
	}
}

func TestNewLogger_HonoursLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Setenv("GO_ENV", "")
	t.Setenv("LOG_LEVEL", "warn")
	log := NewLogger()

	ctx := context.Background()
	assert.True(t, log.Enabled(ctx, slog.LevelWarn))
	assert.False(t, log.Enabled(ctx, slog.LevelInfo))
	assert.Same(t, log, slog.Default())
}

func TestNewLogger_Production(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Setenv("GO_ENV", "production")
	t.Setenv("LOG_LEVEL", "")
	log := NewLogger()
	assert.IsType(t, &slog.JSONHandler{}, log.Handler())
}

func TestAttrs(t *testing.T) {
	assert.Equal(t, slog.String("scope", "algorithms"), Scope("algorithms"))

	err := errors.New("duplicate key")
	attr := Error(err)
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())
}

func TestNewZapLogger(t *testing.T) {
	t.Setenv("GO_ENV", "")
	z, err := NewZapLogger()
	require.NoError(t, err)
	assert.NotNil(t, z)
}

func TestHTTPLogger_Disabled(t *testing.T) {
	t.Setenv("HTTP_LOG_PATH", "")
	h := NewHTTPLogger(nil, slog.Default())
	h.LogRequest("127.0.0.1", "GET", "/api/v1/algorithms", 200, time.Millisecond, "curl", "req-1")
	assert.NoError(t, h.Close())

	var nilLogger *HTTPLogger
	nilLogger.LogRequest("127.0.0.1", "GET", "/", 200, 0, "", "")
}

func TestHTTPLogger_WritesLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.log")
	t.Setenv("HTTP_LOG_PATH", path)

	h := NewHTTPLogger(nil, slog.Default())
	h.LogRequest("10.0.0.7", "DELETE", "/api/v1/algorithms/a1", 204, 42*time.Millisecond, "atlasctl", "req-9")
	h.LogRequest("10.0.0.7", "GET", "/api/v1/tags", 200, time.Millisecond, "atlasctl", "req-10")
	require.NoError(t, h.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"DELETE /api/v1/algorithms/a1" 204 42ms "atlasctl" req-9`)
	assert.Contains(t, out, `"GET /api/v1/tags" 200 1ms`)

	// writes after Close are dropped
	h.LogRequest("10.0.0.7", "GET", "/late", 200, 0, "", "")
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "/late")
}
