package server

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergent-company/atlas/internal/config"
	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/logger"
)

func TestWriteLimiter(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = apperror.HTTPErrorHandler(slog.Default())
	e.Use(writeLimiter(config.RateLimitConfig{WritesPerSecond: 0.001, Burst: 1}))
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	e.POST("/api/v1/tags", ok)
	e.GET("/api/v1/tags", ok)

	do := func(method string) int {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(method, "/api/v1/tags", nil))
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, do(http.MethodPost))
	assert.Equal(t, http.StatusTooManyRequests, do(http.MethodPost))
	assert.Equal(t, http.StatusNoContent, do(http.MethodGet))
}

func TestRecoverer_AnswersWithEnvelope(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = apperror.HTTPErrorHandler(slog.Default())
	e.Use(recoverer(slog.Default()))
	e.GET("/api/v1/algorithms", func(echo.Context) error { panic("nil map") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/algorithms", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"internal_error"`)
}

func TestRequestLogger_SkipsHealthChecks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "access.log")
	t.Setenv("HTTP_LOG_PATH", path)
	access := logger.NewHTTPLogger(nil, slog.Default())
	t.Cleanup(func() { _ = access.Close() })

	e := echo.New()
	e.Use(requestLogger(slog.Default(), access))
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/healthz", ok)
	e.GET("/api/v1/tags", ok)

	for _, p := range []string{"/healthz", "/api/v1/tags"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "/api/v1/tags")
	assert.NotContains(t, string(data), "/healthz")
}
