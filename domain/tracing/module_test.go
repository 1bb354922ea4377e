package tracing

import (
	"log/slog"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergent-company/atlas/internal/config"
)

func TestNewProvider_Disabled(t *testing.T) {
	p, err := NewProvider(&config.Config{}, slog.Default())
	require.NoError(t, err)
	assert.False(t, p.Enabled())

	e := echo.New()
	RegisterMiddleware(e, &config.Config{}, p)
}

func TestIsUntraced(t *testing.T) {
	assert.True(t, isUntraced("/metrics"))
	assert.True(t, isUntraced("/ready"))
	assert.False(t, isUntraced("/api/v1/algorithms"))
}
