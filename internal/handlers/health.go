package handlers

import (
	"context"
	"log"
	"time"

	"shipfee/internal/services/shipping"

	"github.com/gofiber/fiber/v2"
)

// Pinger is a dependency that can report its reachability.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

type HealthHandler struct {
	shippingService shipping.Service
	redis           Pinger
}

// NewHealthHandler creates the health handler. redis may be nil when the
// quote cache is disabled.
func NewHealthHandler(shippingService shipping.Service, redis Pinger) *HealthHandler {
	return &HealthHandler{
		shippingService: shippingService,
		redis:           redis,
	}
}

// HealthCheck reports the active policy version. Redis is optional, so an
// unreachable redis degrades the status without failing the check.
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	version := h.shippingService.Version()
	if version == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"error":  "shipping policy is not loaded",
		})
	}

	status := "ok"
	redisStatus := "disabled"
	if h.redis != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), time.Second)
		defer cancel()

		redisStatus = "connected"
		if err := h.redis.HealthCheck(ctx); err != nil {
			log.Printf("Health check: %v", err)
			redisStatus = "unreachable"
			status = "degraded"
		}
	}

	return c.JSON(fiber.Map{
		"status":         status,
		"policy_version": version,
		"services": fiber.Map{
			"redis": redisStatus,
		},
	})
}
