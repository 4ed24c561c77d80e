package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HealthChecker is anything that can answer a liveness ping.
type HealthChecker interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	db     HealthChecker
	cache  HealthChecker
	logger *zap.Logger
}

func NewHealthHandler(db, cache HealthChecker, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	checks := fiber.Map{}

	if err := h.db.Health(ctx); err != nil {
		h.logger.Warn("Database health check failed", zap.Error(err))
		checks["database"] = "down"
		status = fiber.StatusServiceUnavailable
	} else {
		checks["database"] = "up"
	}

	if err := h.cache.Health(ctx); err != nil {
		h.logger.Warn("Redis health check failed", zap.Error(err))
		checks["redis"] = "down"
		status = fiber.StatusServiceUnavailable
	} else {
		checks["redis"] = "up"
	}

	overall := "healthy"
	if status != fiber.StatusOK {
		overall = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": checks,
		"time":   time.Now(),
	})
}
