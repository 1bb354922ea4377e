package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(NewConfig),
)

// Config holds all application configuration
type Config struct {
	// Server settings
	ServerPort    int    `env:"SERVER_PORT" envDefault:"8080"`
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:"0.0.0.0"`
	Environment   string `env:"ENVIRONMENT" envDefault:"local"`
	Debug         bool   `env:"DEBUG" envDefault:"false"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	Database DatabaseConfig

	// Object storage for implementation files
	Storage StorageConfig

	Paging PagingConfig

	Scheduler SchedulerConfig

	Auth AuthConfig

	RateLimit RateLimitConfig

	Otel OtelConfig

	// Server timeouts
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"60s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host         string        `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port         int           `env:"POSTGRES_PORT" envDefault:"5432"`
	User         string        `env:"POSTGRES_USER" envDefault:"atlas"`
	Password     string        `env:"POSTGRES_PASSWORD" envDefault:""`
	Database     string        `env:"POSTGRES_DB" envDefault:"atlas"`
	SSLMode      string        `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	MaxIdleTime  time.Duration `env:"DB_MAX_IDLE_TIME" envDefault:"5m"`
	QueryDebug   bool          `env:"DB_QUERY_DEBUG" envDefault:"false"`
	// Run goose migrations on startup
	AutoMigrate bool `env:"DB_AUTO_MIGRATE" envDefault:"true"`
}

// DSN is the postgres:// URL for the pgx pool. Credentials are escaped.
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Database,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

// StorageConfig holds S3-compatible storage settings
type StorageConfig struct {
	Endpoint        string `env:"STORAGE_ENDPOINT" envDefault:""`
	AccessKeyID     string `env:"STORAGE_ACCESS_KEY" envDefault:""`
	SecretAccessKey string `env:"STORAGE_SECRET_KEY" envDefault:""`
	Region          string `env:"STORAGE_REGION" envDefault:"us-east-1"`
	Bucket          string `env:"STORAGE_BUCKET_FILES" envDefault:"atlas-files"`
	UseSSL          bool   `env:"STORAGE_USE_SSL" envDefault:"false"`
	// RetryAttempts bounds retries of transient storage failures
	RetryAttempts uint          `env:"STORAGE_RETRY_ATTEMPTS" envDefault:"3"`
	RetryDelay    time.Duration `env:"STORAGE_RETRY_DELAY" envDefault:"200ms"`
	// MaxUploadBytes rejects larger implementation files
	MaxUploadBytes int64 `env:"STORAGE_MAX_UPLOAD_BYTES" envDefault:"104857600"`
}

// IsConfigured returns true if storage is configured
func (s *StorageConfig) IsConfigured() bool {
	return s.Endpoint != "" && s.AccessKeyID != "" && s.SecretAccessKey != ""
}

// PagingConfig holds list defaults
type PagingConfig struct {
	DefaultSize int `env:"PAGE_DEFAULT_SIZE" envDefault:"50"`
	MaxSize     int `env:"PAGE_MAX_SIZE" envDefault:"500"`
}

// SchedulerConfig controls the background maintenance tasks
type SchedulerConfig struct {
	Enabled               bool          `env:"SCHEDULER_ENABLED" envDefault:"true"`
	TagCleanupInterval    time.Duration `env:"SCHEDULER_TAG_CLEANUP_INTERVAL" envDefault:"1h"`
	// TagOrphanGrace keeps unlinked tags younger than this, e.g. ones just created through POST /tags
	TagOrphanGrace        time.Duration `env:"SCHEDULER_TAG_ORPHAN_GRACE" envDefault:"168h"`
	RevisionPruneSchedule string        `env:"SCHEDULER_REVISION_PRUNE_SCHEDULE" envDefault:"0 30 3 * * *"`
	RevisionRetentionDays int           `env:"SCHEDULER_REVISION_RETENTION_DAYS" envDefault:"365"`
}

// RevisionRetention returns the retention window for old revisions
func (s *SchedulerConfig) RevisionRetention() time.Duration {
	return time.Duration(s.RevisionRetentionDays) * 24 * time.Hour
}

// AuthConfig holds the optional write guard settings
type AuthConfig struct {
	// JWTSecret enables HS256 bearer-token checks on mutating routes when set
	JWTSecret string `env:"AUTH_JWT_SECRET" envDefault:""`
	Issuer    string `env:"AUTH_JWT_ISSUER" envDefault:""`
}

// Enabled returns true when writes require a token
func (a *AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// RateLimitConfig throttles mutating requests per client IP
type RateLimitConfig struct {
	WritesPerSecond float64 `env:"RATE_LIMIT_WRITES_PER_SECOND" envDefault:"0"`
	Burst           int     `env:"RATE_LIMIT_BURST" envDefault:"20"`
}

// Enabled returns true when a write rate is configured
func (r *RateLimitConfig) Enabled() bool {
	return r.WritesPerSecond > 0
}

// OtelConfig configures trace export. Tracing is off without an endpoint.
type OtelConfig struct {
	ExporterEndpoint string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ServiceName      string  `env:"OTEL_SERVICE_NAME" envDefault:"atlas-server"`
	SamplingRate     float64 `env:"OTEL_SAMPLING_RATE" envDefault:"1.0"`
}

func (c OtelConfig) Enabled() bool {
	return c.ExporterEndpoint != ""
}

func (c *Config) validate() error {
	if c.Paging.DefaultSize <= 0 || c.Paging.MaxSize < c.Paging.DefaultSize {
		return fmt.Errorf("invalid paging config: default=%d max=%d", c.Paging.DefaultSize, c.Paging.MaxSize)
	}
	if c.Otel.SamplingRate < 0 || c.Otel.SamplingRate > 1 {
		return fmt.Errorf("OTEL_SAMPLING_RATE must be within [0,1], got %v", c.Otel.SamplingRate)
	}
	return nil
}

// NewConfig loads configuration from environment variables
func NewConfig(log *slog.Logger) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Info("configuration loaded",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.ServerPort),
		slog.String("db_host", cfg.Database.Host),
		slog.Bool("storage_configured", cfg.Storage.IsConfigured()),
		slog.Bool("auth_enabled", cfg.Auth.Enabled()),
	)

	return cfg, nil
}
