package auth

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergent-company/atlas/internal/config"
	"github.com/emergent-company/atlas/pkg/apperror"
)

const testSecret = "test-secret"

func newGuard(secret string) *Middleware {
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: secret, Issuer: "atlas"}}
	return NewMiddleware(cfg, slog.Default())
}

func run(t *testing.T, m *Middleware, method, token string) (*Editor, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/api/v1/algorithms", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	var seen *Editor
	err := m.RequireEditor()(func(c echo.Context) error {
		seen = GetEditor(c)
		return nil
	})(c)
	return seen, err
}

func TestRequireEditor_Disabled(t *testing.T) {
	_, err := run(t, newGuard(""), http.MethodDelete, "")
	assert.NoError(t, err)
}

func TestRequireEditor_ReadsArePublic(t *testing.T) {
	_, err := run(t, newGuard(testSecret), http.MethodGet, "")
	assert.NoError(t, err)
}

func TestRequireEditor_MissingToken(t *testing.T) {
	_, err := run(t, newGuard(testSecret), http.MethodPost, "")
	assert.ErrorIs(t, err, apperror.ErrMissingToken)
}

func TestRequireEditor_ValidToken(t *testing.T) {
	token, err := Sign(testSecret, "atlas", "curator", time.Minute)
	require.NoError(t, err)

	editor, err := run(t, newGuard(testSecret), http.MethodPut, token)
	require.NoError(t, err)
	require.NotNil(t, editor)
	assert.Equal(t, "curator", editor.Subject)
	assert.Equal(t, []string{"catalog:write"}, editor.Scopes)
}

func TestRequireEditor_RejectedTokens(t *testing.T) {
	wrongSecret, err := Sign("other", "atlas", "curator", time.Minute)
	require.NoError(t, err)
	wrongIssuer, err := Sign(testSecret, "someone-else", "curator", time.Minute)
	require.NoError(t, err)
	expired, err := Sign(testSecret, "atlas", "curator", -time.Hour)
	require.NoError(t, err)
	noSubject, err := Sign(testSecret, "atlas", "", time.Minute)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"wrong secret": wrongSecret,
		"wrong issuer": wrongIssuer,
		"expired":      expired,
		"no subject":   noSubject,
		"garbage":      "not.a.jwt",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := run(t, newGuard(testSecret), http.MethodDelete, token)
			assert.ErrorIs(t, err, apperror.ErrInvalidToken)
		})
	}
}

func TestIsWrite(t *testing.T) {
	assert.True(t, IsWrite(http.MethodPatch))
	assert.False(t, IsWrite(http.MethodHead))
}
