package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/internal/cli/client"
	"github.com/emergent-company/atlas/internal/cli/config"
	"github.com/emergent-company/atlas/internal/version"
	"github.com/emergent-company/atlas/pkg/paging"
)

type fakeServer struct {
	mu       sync.Mutex
	deleted  []string
	created  []string
	srv      *httptest.Server
	apiLevel string
}

func (f *fakeServer) record(list *[]string, v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	*list = append(*list, v)
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	f := &fakeServer{apiLevel: "v1"}
	nextID := 0

	e := echo.New()
	e.GET("/api/v1/algorithms", func(c echo.Context) error {
		return c.JSON(http.StatusOK, paging.Page[catalog.Algorithm]{
			Content: []catalog.Algorithm{
				{ID: "a1", Name: "Shor", ComputationModel: "QUANTUM", QuantumComputationModel: "GATE_BASED"},
				{ID: "a2", Name: "Quicksort", ComputationModel: "CLASSIC"},
			},
			Page: paging.Meta{Size: 20, TotalElements: 2, TotalPages: 1},
		})
	})
	e.GET("/api/v1/algorithms/:id", func(c echo.Context) error {
		return c.JSON(http.StatusOK, catalog.Algorithm{ID: c.Param("id"), Name: "Grover", ComputationModel: "QUANTUM"})
	})
	e.DELETE("/api/v1/algorithms/:id", func(c echo.Context) error {
		f.record(&f.deleted, c.Param("id"))
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/api/v1/software-platforms", func(c echo.Context) error {
		return c.JSON(http.StatusOK, paging.Page[catalog.SoftwarePlatform]{
			Content: []catalog.SoftwarePlatform{{ID: "sp1", Name: "Qiskit", Version: "1.0"}},
			Page:    paging.Meta{Size: 20, TotalElements: 1, TotalPages: 1},
		})
	})
	e.GET("/api/v1/info", func(c echo.Context) error {
		return c.JSON(http.StatusOK, client.ServerInfo{Name: "atlas", APIVersion: f.apiLevel, Build: version.Info{Version: "dev"}})
	})
	create := func(c echo.Context) error {
		f.record(&f.created, c.Path())
		f.mu.Lock()
		nextID++
		id := nextID
		f.mu.Unlock()
		return c.JSON(http.StatusCreated, map[string]string{"id": "id-" + strconv.Itoa(id)})
	}
	e.POST("/api/v1/publications", create)
	e.POST("/api/v1/algorithms", create)
	e.POST("/api/v1/algorithms/:id/publications", func(c echo.Context) error {
		f.record(&f.created, c.Path())
		return c.NoContent(http.StatusNoContent)
	})

	f.srv = httptest.NewServer(e)
	t.Cleanup(f.srv.Close)
	return f
}

// resetFlags undoes flag values of earlier runs; the command tree is global.
func resetFlags(c *cobra.Command) {
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(fl *pflag.Flag) {
			_ = fl.Value.Set(fl.DefValue)
			fl.Changed = false
		})
	}
	reset(c.PersistentFlags())
	reset(c.Flags())
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes atlasctl with args against the fake server, isolated from
// any user config file.
func run(t *testing.T, f *fakeServer, args ...string) (string, error) {
	t.Helper()
	base := []string{"--config", filepath.Join(t.TempDir(), "config.yaml")}
	if f != nil {
		base = append(base, "--server", f.srv.URL)
	}

	var out bytes.Buffer
	root := NewRootCommand()
	resetFlags(root)
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append(base, args...))
	err := root.Execute()
	return out.String(), err
}

func TestAlgorithmsList_Table(t *testing.T) {
	f := newFakeServer(t)
	out, err := run(t, f, "algorithms", "list", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Shor")
	assert.Contains(t, out, "GATE_BASED")
	assert.Contains(t, out, "Quicksort")
	assert.Contains(t, out, "Page 1 of 1 (2 total)")
}

func TestAlgorithmsList_JSON(t *testing.T) {
	f := newFakeServer(t)
	out, err := run(t, f, "algorithms", "list", "-o", "json")
	require.NoError(t, err)

	var page paging.Page[catalog.Algorithm]
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Len(t, page.Content, 2)
	assert.Equal(t, 2, page.Page.TotalElements)
}

func TestAlgorithmsGet_YAML(t *testing.T) {
	f := newFakeServer(t)
	out, err := run(t, f, "algorithms", "get", "a9", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "id: a9")
	assert.Contains(t, out, "name: Grover")
	assert.Contains(t, out, "computationModel: QUANTUM")
}

func TestAlgorithmsDelete_RequiresConfirmation(t *testing.T) {
	f := newFakeServer(t)
	_, err := run(t, f, "algorithms", "delete", "a1", "--yes=false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
	assert.Empty(t, f.deleted)

	out, err := run(t, f, "algorithms", "delete", "a1", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted algorithm a1")
	assert.Equal(t, []string{"a1"}, f.deleted)
}

func TestPlatformsList(t *testing.T) {
	f := newFakeServer(t)
	out, err := run(t, f, "platforms", "list", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Qiskit")
	assert.Contains(t, out, "sp1")
}

func TestImport(t *testing.T) {
	f := newFakeServer(t)
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `
publications:
  - key: p
    title: Quantum search
algorithms:
  - key: g
    name: Grover
    computationModel: QUANTUM
    quantumComputationModel: GATE_BASED
    publications: [p]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, err := run(t, f, "import", path, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid: 1 algorithms, 1 publications")
	assert.Empty(t, f.created)

	out, err = run(t, f, "import", path, "--dry-run=false", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/api/v1/publications",
		"/api/v1/algorithms",
		"/api/v1/algorithms/:id/publications",
	}, f.created)
	assert.Contains(t, out, `"Algorithms": 1`)
	assert.Contains(t, out, `"Links": 1`)
}

func TestVersion(t *testing.T) {
	f := newFakeServer(t)
	out, err := run(t, f, "version", "--client=false")
	require.NoError(t, err)
	assert.Contains(t, out, "atlasctl")
	assert.Contains(t, out, "compatible")

	f.apiLevel = "v2"
	_, err = run(t, f, "version", "--client=false")
	var incompatible *client.ErrIncompatible
	assert.ErrorAs(t, err, &incompatible)

	out, err = run(t, nil, "version", "--client")
	require.NoError(t, err)
	assert.NotContains(t, out, "compatible")
}

func TestConfigSetServerAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.Save(&config.Config{ServerURL: "http://old", Token: "abcdefghijklmnop"}, path))

	var out bytes.Buffer
	root := NewRootCommand()
	resetFlags(root)
	root.SetOut(&out)
	root.SetArgs([]string{"config", "set-server", "http://new:3002", "--config", path})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "http://new:3002")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://new:3002", cfg.ServerURL)
	assert.Equal(t, "abcdefghijklmnop", cfg.Token)

	out.Reset()
	resetFlags(root)
	root.SetArgs([]string{"config", "show", "--config", path})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "http://new:3002")
	assert.Contains(t, out.String(), "abcd...mnop")
	assert.NotContains(t, out.String(), "abcdefghijklmnop")
}
