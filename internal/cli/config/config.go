// Package config loads atlasctl settings from ~/.atlas/config.yaml and
// ATLAS_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const defaultServerURL = "http://localhost:3002"

type Config struct {
	ServerURL string `mapstructure:"server_url" yaml:"server_url"`
	Token     string `mapstructure:"token" yaml:"token,omitempty"`
	Output    string `mapstructure:"output" yaml:"output,omitempty"` // table, json, yaml
	PageSize  int    `mapstructure:"page_size" yaml:"page_size,omitempty"`
	Debug     bool   `mapstructure:"debug" yaml:"debug,omitempty"`
}

func defaults() *Config {
	return &Config{
		ServerURL: defaultServerURL,
		Output:    "table",
		PageSize:  20,
	}
}

// Load reads the YAML file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return defaults(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// DiscoverPath returns the config file to use: the flag value, then
// ATLAS_CONFIG, then ~/.atlas/config.yaml.
func DiscoverPath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if envPath := os.Getenv("ATLAS_CONFIG"); envPath != "" {
		return envPath
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".atlas", "config.yaml")
	}
	return filepath.Join(homeDir, ".atlas", "config.yaml")
}

// LoadWithEnv reads the file at path, when present, and overlays ATLAS_*
// environment variables.
func LoadWithEnv(path string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("ATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := defaults()
	v.SetDefault("server_url", d.ServerURL)
	v.SetDefault("output", d.Output)
	v.SetDefault("page_size", d.PageSize)
	v.SetDefault("debug", false)
	_ = v.BindEnv("token")

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = d.ServerURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = d.PageSize
	}
	return cfg, nil
}

// MaskedToken shows only the ends of the token.
func (c *Config) MaskedToken() string {
	switch {
	case c.Token == "":
		return "(not set)"
	case len(c.Token) <= 12:
		return "****"
	default:
		return c.Token[:4] + "..." + c.Token[len(c.Token)-4:]
	}
}
