package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const healthCheckTimeout = 2 * time.Second

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// Ping calls f.
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler reports dependency status.
type HealthHandler struct {
	environment string
	database    Pinger
	cache       Pinger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(environment string, database, cache Pinger) *HealthHandler {
	return &HealthHandler{environment: environment, database: database, cache: cache}
}

// HealthResponse describes service health.
type HealthResponse struct {
	Status      string `json:"status"`
	Database    string `json:"database"`
	Cache       string `json:"cache"`
	Environment string `json:"environment"`
}

// Health godoc
// @Summary Health check
// @Description 503 when the database is unreachable. A cache outage only degrades.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()
	log := zerolog.Ctx(c.Request().Context())

	resp := HealthResponse{Status: "ok", Database: "ok", Cache: "ok", Environment: h.environment}
	status := http.StatusOK

	if err := h.database.Ping(ctx); err != nil {
		log.Error().Err(err).Msg("database ping failed")
		resp.Database = "error"
		resp.Status = "error"
		status = http.StatusServiceUnavailable
	}
	if err := h.cache.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("redis ping failed")
		resp.Cache = "error"
		if resp.Status == "ok" {
			resp.Status = "degraded"
		}
	}

	return c.JSON(status, resp)
}
