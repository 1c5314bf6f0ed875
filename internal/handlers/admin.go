package handlers

import (
	"context"
	"errors"
	"log"

	"shipfee/internal/models"
	"shipfee/internal/services/shipping"
	"shipfee/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// StatsReader exposes the cumulative quote counters.
type StatsReader interface {
	Totals(ctx context.Context) (map[string]int64, error)
}

type AdminHandler struct {
	shippingService shipping.Service
	stats           StatsReader
}

// NewAdminHandler creates the admin handler. stats may be nil when quote
// stats are disabled.
func NewAdminHandler(shippingService shipping.Service, stats StatsReader) *AdminHandler {
	return &AdminHandler{
		shippingService: shippingService,
		stats:           stats,
	}
}

// ReloadPolicy re-reads the policy source and swaps the active table. A
// rejected source leaves the current table serving.
func (h *AdminHandler) ReloadPolicy(c *fiber.Ctx) error {
	var userID uint
	if claims, ok := c.Locals("claims").(*models.UserClaims); ok {
		userID = claims.UserID
	}

	result, err := h.shippingService.Reload(c.UserContext())
	if err != nil {
		if errors.Is(err, shipping.ErrNoLoader) {
			return response.Error(c, fiber.StatusServiceUnavailable, err.Error())
		}
		log.Printf("Policy reload by user %d rejected: %v", userID, err)
		return response.UnprocessableEntity(c, "Shipping policy rejected", fiber.Map{
			"details":         err.Error(),
			"current_version": h.shippingService.Version(),
		})
	}

	log.Printf("Policy reloaded by user %d: changed=%t", userID, result.Changed)
	return response.Success(c, "Shipping policy reloaded", result)
}

// QuoteStats returns the quote counters keyed by "method:outcome".
func (h *AdminHandler) QuoteStats(c *fiber.Ctx) error {
	if h.stats == nil {
		return response.Error(c, fiber.StatusServiceUnavailable, "quote stats are disabled")
	}

	totals, err := h.stats.Totals(c.UserContext())
	if err != nil {
		log.Printf("Failed to read quote stats: %v", err)
		return response.ServerError(c, "Failed to read quote stats")
	}

	return response.Success(c, "Quote stats", fiber.Map{
		"policy_version": h.shippingService.Version(),
		"totals":         totals,
	})
}
