package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/emergent-company/atlas/internal/config"
	"github.com/emergent-company/atlas/internal/storage"
	"github.com/emergent-company/atlas/internal/version"
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
	StatusDisabled  = "disabled"

	checkTimeout = 5 * time.Second
	// APIVersion is the major version of the /api routes.
	APIVersion = "v1"
)

// Handler serves the health and info endpoints
type Handler struct {
	pool    *pgxpool.Pool
	cfg     *config.Config
	blobs   *storage.Service
	host    *hostSampler
	started time.Time
}

func NewHandler(pool *pgxpool.Pool, cfg *config.Config, blobs *storage.Service) *Handler {
	return &Handler{
		pool:    pool,
		cfg:     cfg,
		blobs:   blobs,
		host:    newHostSampler(),
		started: time.Now(),
	}
}

type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
}

// Check is the outcome of one dependency check
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type ReadyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// InfoResponse describes the running server to API clients
type InfoResponse struct {
	Name           string       `json:"name"`
	Build          version.Info `json:"build"`
	APIVersion     string       `json:"apiVersion"`
	StorageEnabled bool         `json:"storageEnabled"`
	AuthEnabled    bool         `json:"authEnabled"`
}

type DebugResponse struct {
	Environment string     `json:"environment"`
	GoVersion   string     `json:"goVersion"`
	Goroutines  int        `json:"goroutines"`
	HeapAllocMB uint64     `json:"heapAllocMb"`
	SysMB       uint64     `json:"sysMb"`
	NumGC       uint32     `json:"numGc"`
	Pool        PoolStats  `json:"pool"`
	Host        *HostStats `json:"host,omitempty"`
	HostError   string     `json:"hostError,omitempty"`
}

type PoolStats struct {
	Total  int32 `json:"total"`
	Idle   int32 `json:"idle"`
	InUse  int32 `json:"inUse"`
	MaxCap int32 `json:"max"`
}

func checkOf(err error, failed string) Check {
	if err != nil {
		return Check{Status: failed, Message: err.Error()}
	}
	return Check{Status: StatusHealthy}
}

func (h *Handler) checkDatabase(ctx context.Context) Check {
	return checkOf(h.pool.Ping(ctx), StatusUnhealthy)
}

// checkStorage only degrades the service; catalog reads work without blobs.
func (h *Handler) checkStorage(ctx context.Context) Check {
	if !h.blobs.Enabled() {
		return Check{Status: StatusDisabled}
	}
	_, err := h.blobs.Exists(ctx, ".health")
	return checkOf(err, StatusDegraded)
}

// overall is the worst status among checks.
func overall(checks map[string]Check) string {
	status := StatusHealthy
	for _, c := range checks {
		switch c.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			status = StatusDegraded
		}
	}
	return status
}

// Health reports database and object storage state
// @Summary      Get service health
// @Description  The database is required. Object storage only degrades the status.
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Success      503 {object} HealthResponse
// @Router       /health [get]
func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), checkTimeout)
	defer cancel()

	checks := map[string]Check{
		"database": h.checkDatabase(ctx),
		"storage":  h.checkStorage(ctx),
	}
	status := overall(checks)

	code := http.StatusOK
	if status == StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		Version:   version.Version,
		Checks:    checks,
	})
}

// Healthz is the liveness check
// @Summary      Liveness check
// @Tags         health
// @Produce      plain
// @Success      200 {string} string "OK"
// @Router       /healthz [get]
func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Ready is the readiness check; it fails while the database is unreachable
// @Summary      Readiness check
// @Tags         health
// @Produce      json
// @Success      200 {object} ReadyResponse
// @Success      503 {object} ReadyResponse
// @Router       /ready [get]
func (h *Handler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), checkTimeout)
	defer cancel()

	if db := h.checkDatabase(ctx); db.Status != StatusHealthy {
		return c.JSON(http.StatusServiceUnavailable, ReadyResponse{Status: "not_ready", Message: db.Message})
	}
	return c.JSON(http.StatusOK, ReadyResponse{Status: "ready"})
}

// Debug returns runtime, pool and host figures. 404 unless DEBUG=true.
// @Summary      Debug information
// @Tags         health
// @Produce      json
// @Success      200 {object} DebugResponse
// @Router       /debug [get]
func (h *Handler) Debug(c echo.Context) error {
	if !h.cfg.Debug {
		return echo.ErrNotFound
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	st := h.pool.Stat()

	out := DebugResponse{
		Environment: h.cfg.Environment,
		GoVersion:   runtime.Version(),
		Goroutines:  runtime.NumGoroutine(),
		HeapAllocMB: ms.HeapAlloc >> 20,
		SysMB:       ms.Sys >> 20,
		NumGC:       ms.NumGC,
		Pool: PoolStats{
			Total:  st.TotalConns(),
			Idle:   st.IdleConns(),
			InUse:  st.AcquiredConns(),
			MaxCap: st.MaxConns(),
		},
	}
	if snap, err := h.host.Sample(c.Request().Context()); err != nil {
		out.HostError = err.Error()
	} else {
		out.Host = &snap
	}
	return c.JSON(http.StatusOK, out)
}

// Info describes the build and the optional features that are switched on
// @Summary      Server information
// @Tags         health
// @Produce      json
// @Success      200 {object} InfoResponse
// @Router       /api/v1/info [get]
func (h *Handler) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, InfoResponse{
		Name:           "atlas",
		Build:          version.Current(),
		APIVersion:     APIVersion,
		StorageEnabled: h.blobs.Enabled(),
		AuthEnabled:    h.cfg.Auth.Enabled(),
	})
}
