package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server_url: http://atlas.internal:8080
output: json
page_size: 50
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://atlas.internal:8080", cfg.ServerURL)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, 50, cfg.PageSize)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, defaultServerURL, cfg.ServerURL)
	assert.Equal(t, "table", cfg.Output)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, Save(&Config{ServerURL: "http://x", Token: "secret"}, path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://x", cfg.ServerURL)
	assert.Equal(t, "secret", cfg.Token)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadWithEnv_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_url: http://from-file\noutput: yaml\n"), 0o644))

	t.Setenv("ATLAS_SERVER_URL", "http://from-env")
	t.Setenv("ATLAS_TOKEN", "tok-from-env")

	cfg, err := LoadWithEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env", cfg.ServerURL)
	assert.Equal(t, "tok-from-env", cfg.Token)
	assert.Equal(t, "yaml", cfg.Output)
	assert.Equal(t, 20, cfg.PageSize)
}

func TestDiscoverPath(t *testing.T) {
	assert.Equal(t, "/tmp/a.yaml", DiscoverPath("/tmp/a.yaml"))

	t.Setenv("ATLAS_CONFIG", "/etc/atlas.yaml")
	assert.Equal(t, "/etc/atlas.yaml", DiscoverPath(""))
}

func TestMaskedToken(t *testing.T) {
	assert.Equal(t, "(not set)", (&Config{}).MaskedToken())
	assert.Equal(t, "****", (&Config{Token: "short"}).MaskedToken())
	assert.Equal(t, "eyJh...wxyz", (&Config{Token: "eyJhbGciOiJIUzI1NiJ9.wxyz"}).MaskedToken())
}
