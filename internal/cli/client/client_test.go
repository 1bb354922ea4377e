package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/internal/version"
	"github.com/emergent-company/atlas/pkg/paging"
)

type recorder struct {
	mu   sync.Mutex
	reqs []string
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs = append(r.reqs, s)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.reqs...)
}

func newServer(t *testing.T) (*httptest.Server, *recorder) {
	t.Helper()
	seen := &recorder{}

	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			seen.add(c.Request().Method+" "+c.Request().URL.RequestURI()+" "+c.Request().Header.Get("Authorization"))
			return next(c)
		}
	})
	e.GET("/api/v1/algorithms", func(c echo.Context) error {
		page := paging.Page[catalog.Algorithm]{
			Content: []catalog.Algorithm{{ID: "a1", Name: "Shor", ComputationModel: catalog.ComputationModel("QUANTUM")}},
			Page:    paging.Meta{Size: 20, TotalElements: 1, TotalPages: 1},
		}
		return c.JSON(http.StatusOK, page)
	})
	e.GET("/api/v1/algorithms/:id", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, map[string]any{
			"error": map[string]string{"code": "not_found", "message": "Algorithm not found"},
		})
	})
	e.POST("/api/v1/algorithm-relation-types", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"id": "t1", "name": "uses"})
	})
	e.POST("/api/v1/algorithms/:id/publications", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/api/v1/info", func(c echo.Context) error {
		return c.JSON(http.StatusOK, ServerInfo{Name: "atlas", APIVersion: "v1", Build: version.Info{Version: "1.4.0"}})
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, seen
}

func TestClient_Algorithms(t *testing.T) {
	srv, seen := newServer(t)
	c := New(srv.URL+"/", "tok", false)

	page, err := c.Algorithms(context.Background(), ListOptions{Page: 1, Size: 5, Search: "sh"})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Shor", page.Content[0].Name)

	reqs := seen.all()
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0], "GET /api/v1/algorithms?")
	assert.Contains(t, reqs[0], "search=sh")
	assert.Contains(t, reqs[0], "size=5")
	assert.Contains(t, reqs[0], "Bearer tok")
}

func TestClient_APIError(t *testing.T) {
	srv, _ := newServer(t)
	c := New(srv.URL, "", false)

	_, err := c.Algorithm(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "not_found", apiErr.Code)
	assert.Equal(t, "Algorithm not found", apiErr.Message)
}

func TestClient_CreateAndPost(t *testing.T) {
	srv, seen := newServer(t)
	c := New(srv.URL, "", false)
	ctx := context.Background()

	id, err := c.Create(ctx, "/api/v1/algorithm-relation-types", map[string]string{"name": "uses"})
	require.NoError(t, err)
	assert.Equal(t, "t1", id)

	require.NoError(t, c.Post(ctx, "/api/v1/algorithms/a1/publications", map[string]string{"id": "p1"}))
	assert.Len(t, seen.all(), 2)
}

func TestClient_Info(t *testing.T) {
	srv, _ := newServer(t)
	info, err := New(srv.URL, "", false).Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", info.Build.Version)
	assert.NoError(t, CheckCompatible("1.2.0", info))
}

func TestCheckCompatible(t *testing.T) {
	info := func(api, v string) *ServerInfo {
		return &ServerInfo{APIVersion: api, Build: version.Info{Version: v}}
	}

	tests := []struct {
		name    string
		client  string
		server  *ServerInfo
		wantErr bool
	}{
		{"same version", "1.2.0", info("v1", "1.2.0"), false},
		{"newer minor on server", "1.2.0", info("v1", "1.5.3"), false},
		{"older minor on server", "1.2.0", info("v1", "1.1.9"), true},
		{"next major on server", "1.2.0", info("v1", "2.0.0"), true},
		{"dev client", "dev", info("v1", "0.1.0"), false},
		{"dev server", "1.2.0", info("v1", "dev"), false},
		{"other api generation", "dev", info("v2", "dev"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCompatible(tt.client, tt.server)
			if tt.wantErr {
				var incompatible *ErrIncompatible
				assert.ErrorAs(t, err, &incompatible)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
