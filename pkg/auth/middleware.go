// Package auth guards mutating catalog routes with HS256 bearer tokens.
// Reads stay public. When no secret is configured the guard lets everything through.
package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/emergent-company/atlas/internal/config"
	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/logger"
)

var Module = fx.Module("auth",
	fx.Provide(NewMiddleware),
)

// Editor is the authenticated caller of a mutating request
type Editor struct {
	Subject string   `json:"sub"`
	Scopes  []string `json:"scopes,omitempty"`
}

// Claims are the JWT claims accepted by the guard
type Claims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

type contextKey string

const EditorContextKey contextKey = "auth_editor"

// GetEditor retrieves the authenticated editor from the Echo context
func GetEditor(c echo.Context) *Editor {
	if e, ok := c.Get(string(EditorContextKey)).(*Editor); ok {
		return e
	}
	return nil
}

// Middleware validates bearer tokens
type Middleware struct {
	secret []byte
	issuer string
	log    *slog.Logger
}

// NewMiddleware creates the write guard from config
func NewMiddleware(cfg *config.Config, log *slog.Logger) *Middleware {
	m := &Middleware{
		issuer: cfg.Auth.Issuer,
		log:    log.With(logger.Scope("auth")),
	}
	if cfg.Auth.Enabled() {
		m.secret = []byte(cfg.Auth.JWTSecret)
	}
	return m
}

// Enabled reports whether tokens are checked at all
func (m *Middleware) Enabled() bool {
	return len(m.secret) > 0
}

// RequireEditor returns middleware that requires a valid token on POST, PUT,
// PATCH and DELETE requests.
func (m *Middleware) RequireEditor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !m.Enabled() || !IsWrite(c.Request().Method) {
				return next(c)
			}
			token := extractToken(c.Request())
			if token == "" {
				return apperror.ErrMissingToken
			}
			editor, err := m.Verify(token)
			if err != nil {
				m.log.Warn("authentication failed",
					slog.String("path", c.Request().URL.Path),
					logger.Error(err))
				return apperror.ErrInvalidToken.WithInternal(err)
			}
			c.Set(string(EditorContextKey), editor)
			return next(c)
		}
	}
}

// Verify parses and validates a signed token
func (m *Middleware) Verify(token string) (*Editor, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("token is not valid")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return &Editor{Subject: claims.Subject, Scopes: strings.Fields(claims.Scope)}, nil
}

// Sign issues a token for subject. Used by the CLI and tests.
func Sign(secret, issuer, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Scope: "catalog:write",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// IsWrite reports whether method mutates state
func IsWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func extractToken(r *http.Request) string {
	h := r.Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}
