// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emergent-company/atlas/pkg/apperror"
)

var (
	// HTTP metrics
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atlas_http_requests_total",
		Help: "Total number of HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "atlas_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// Database metrics
	DBQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atlas_db_queries_total",
		Help: "Total number of SQL statements by operation and result",
	}, []string{"operation", "result"})

	DBSlowQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "atlas_db_slow_queries_total",
		Help: "SQL statements slower than the slow-query threshold",
	})

	// Catalog metrics
	EntitiesDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atlas_entities_deleted_total",
		Help: "Total number of catalog entities deleted, including cascaded deletes",
	}, []string{"entity"})

	LinkChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atlas_link_changes_total",
		Help: "Total number of many-to-many link changes",
	}, []string{"table", "op"})

	RevisionsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atlas_revisions_recorded_total",
		Help: "Total number of revisions recorded",
	}, []string{"entity", "type"})

	// Scheduler metrics
	TaskRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atlas_scheduler_task_runs_total",
		Help: "Total number of scheduled task runs by result",
	}, []string{"task", "result"})

	// Host metrics, refreshed by the debug endpoint and the host monitor
	MemoryUtilization = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "atlas_host_memory_utilization_percent",
		Help: "Host memory utilization percentage",
	})

	CPULoadAvg = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "atlas_host_cpu_load_avg",
		Help: "Host CPU load average",
	}, []string{"period"})
)

// Deleted counts n deleted rows of entity.
func Deleted(entity string, n int64) {
	if n > 0 {
		EntitiesDeleted.WithLabelValues(entity).Add(float64(n))
	}
}

// Middleware records request count and latency per route template.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := c.Response().Status
			if err != nil {
				status = apperror.Status(err)
			}
			method := c.Request().Method
			HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler serves the default registry.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
