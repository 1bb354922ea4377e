package testutil

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/emergent-company/atlas/internal/config"
)

const (
	postgresImage    = "postgres:16-alpine"
	postgresUser     = "atlas"
	postgresPassword = "atlas"
	postgresDB       = "atlas"
)

var (
	containerOnce sync.Once
	containerHost string
	containerPort int
	containerErr  error
)

func useContainers() bool {
	ok, _ := strconv.ParseBool(os.Getenv("TEST_USE_CONTAINERS"))
	return ok
}

// applyContainer points cfg at a PostgreSQL container shared by the whole
// test binary. The container is reaped by testcontainers when the process exits.
func applyContainer(ctx context.Context, cfg *config.DatabaseConfig) error {
	containerOnce.Do(func() {
		containerHost, containerPort, containerErr = startPostgres(ctx)
	})
	if containerErr != nil {
		return fmt.Errorf("start postgres container: %w", containerErr)
	}
	cfg.Host = containerHost
	cfg.Port = containerPort
	cfg.User = postgresUser
	cfg.Password = postgresPassword
	cfg.Database = postgresDB
	cfg.SSLMode = "disable"
	return nil
}

func startPostgres(ctx context.Context) (string, int, error) {
	c, err := postgres.Run(ctx,
		postgresImage,
		postgres.WithDatabase(postgresDB),
		postgres.WithUsername(postgresUser),
		postgres.WithPassword(postgresPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return "", 0, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return "", 0, err
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return "", 0, err
	}
	return host, port.Int(), nil
}
