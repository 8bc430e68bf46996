package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/perfboard/perfboard/internal/pkg/database"
)

// HealthHandler handles health check endpoints. PostgreSQL is the
// only hard dependency; MongoDB being down degrades the service
// (review endpoints fail) but does not make it unhealthy, and Redis
// is a pure optimization.
type HealthHandler struct {
	postgres  *database.PostgresDB
	mongo     *database.MongoDB
	redis     *database.RedisDB
	version   string
	startTime time.Time
}

// NewHealthHandler creates a new health handler. redis may be nil
// when caching is disabled.
func NewHealthHandler(postgres *database.PostgresDB, mongo *database.MongoDB, redis *database.RedisDB, version string) *HealthHandler {
	return &HealthHandler{
		postgres:  postgres,
		mongo:     mongo,
		redis:     redis,
		version:   version,
		startTime: time.Now(),
	}
}

// HealthStatus represents health check status
type HealthStatus struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Uptime    string            `json:"uptime"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	status := HealthStatus{
		Status:    "healthy",
		Version:   h.version,
		Uptime:    time.Since(h.startTime).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    make(map[string]string),
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.postgres.Pool.Ping(ctx); err != nil {
		status.Status = "unhealthy"
		status.Checks["postgres"] = "unhealthy: " + err.Error()
	} else {
		status.Checks["postgres"] = "healthy"
	}

	if err := h.mongo.Ping(ctx); err != nil {
		if status.Status == "healthy" {
			status.Status = "degraded"
		}
		status.Checks["mongo"] = "unhealthy: " + err.Error()
	} else {
		status.Checks["mongo"] = "healthy"
	}

	if h.redis != nil {
		if _, err := h.redis.Client.Ping(ctx).Result(); err != nil {
			status.Checks["redis"] = "unhealthy: " + err.Error()
		} else {
			status.Checks["redis"] = "healthy"
		}
	} else {
		status.Checks["redis"] = "disabled"
	}

	statusCode := fiber.StatusOK
	if status.Status == "unhealthy" {
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(status)
}

// Liveness handles GET /healthz - basic liveness probe
func (h *HealthHandler) Liveness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// Version handles GET /version
func (h *HealthHandler) Version(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version": h.version,
		"uptime":  time.Since(h.startTime).String(),
	})
}

// Readiness handles GET /readyz - readiness probe. Only the
// relational store gates readiness.
func (h *HealthHandler) Readiness(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	if err := h.postgres.Pool.Ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "not ready",
			"reason": "postgres unavailable",
		})
	}

	return c.JSON(fiber.Map{
		"status": "ready",
	})
}
