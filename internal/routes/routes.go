// Package routes defines the API routing configuration.
// It wires handlers to paths and applies authentication where required.
package routes

import (
	"shipfee/internal/handlers"
	"shipfee/internal/middleware"
	"shipfee/internal/models"
	"shipfee/internal/services/shipping"

	"github.com/gofiber/fiber/v2"
)

// Dependencies are the collaborators the routes need.
type Dependencies struct {
	ShippingService shipping.Service
	// Redis is optional; nil reports the cache as disabled.
	Redis handlers.Pinger
	// Stats is optional; nil disables the stats route.
	Stats     handlers.StatsReader
	JWTSecret string
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	shippingHandler := handlers.NewShippingHandler(deps.ShippingService)
	adminHandler := handlers.NewAdminHandler(deps.ShippingService, deps.Stats)
	healthHandler := handlers.NewHealthHandler(deps.ShippingService, deps.Redis)
	authMiddleware := middleware.NewAuthMiddleware(deps.JWTSecret)

	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api")

	// Public checkout routes
	shippingGroup := api.Group("/shipping")
	shippingGroup.Post("/fee", shippingHandler.CalculateFee)
	shippingGroup.Post("/quote", shippingHandler.Quote)
	shippingGroup.Post("/quotes", shippingHandler.BatchQuotes)
	shippingGroup.Get("/methods", shippingHandler.ListMethods)

	// Admin routes
	admin := api.Group("/admin", authMiddleware.Handler)
	admin.Get("/shipping/policy",
		middleware.HasPermission(models.PermissionShippingPolicyRead),
		shippingHandler.ListMethods,
	)
	admin.Post("/shipping/policy/reload",
		middleware.HasPermission(models.PermissionShippingPolicyReload),
		adminHandler.ReloadPolicy,
	)
	admin.Get("/shipping/stats",
		middleware.AdminAuthMiddleware,
		adminHandler.QuoteStats,
	)
}
