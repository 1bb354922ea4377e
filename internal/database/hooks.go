package database

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/emergent-company/atlas/pkg/logger"
	"github.com/emergent-company/atlas/pkg/metrics"
)

const slowQueryThreshold = 3 * time.Second

// queryHook counts statements and reports slow or failed ones. With verbose
// set every statement is logged at debug level.
type queryHook struct {
	log     *slog.Logger
	verbose bool
}

func newQueryHook(log *slog.Logger, verbose bool) *queryHook {
	return &queryHook{log: log, verbose: verbose}
}

func (h *queryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *queryHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	took := time.Since(event.StartTime)
	op := operation(event.Query)

	result := "ok"
	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		result = "error"
	}
	metrics.DBQueries.WithLabelValues(op, result).Inc()

	switch {
	case result == "error":
		// constraint violations are mapped to 4xx by the services; log them quietly
		h.log.Debug("query failed",
			slog.String("query", event.Query),
			slog.Duration("took", took),
			logger.Error(event.Err))
	case took > slowQueryThreshold:
		metrics.DBSlowQueries.Inc()
		h.log.Warn("slow query",
			slog.String("operation", op),
			slog.String("query", event.Query),
			slog.Duration("took", took))
	case h.verbose:
		h.log.Debug("query", slog.String("query", event.Query), slog.Duration("took", took))
	}
}

// operation is the leading SQL keyword of query, upper-cased.
func operation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "UNKNOWN"
	}
	op := strings.ToUpper(fields[0])
	switch op {
	case "SELECT", "INSERT", "UPDATE", "DELETE", "WITH", "BEGIN", "COMMIT", "ROLLBACK", "SAVEPOINT", "RELEASE":
		return op
	}
	return "OTHER"
}
