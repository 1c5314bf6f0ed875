// Package main is the entry point of the shipping fee service.
// It loads configuration and the shipping policy, wires the optional redis
// cache, and starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shipfee/internal/config"
	"shipfee/internal/handlers"
	"shipfee/internal/middleware"
	"shipfee/internal/repositories"
	"shipfee/internal/repositories/cache"
	"shipfee/internal/routes"
	"shipfee/internal/services/shipping"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	config.LoadEnv()
	cfg := config.Load()

	var db *gorm.DB
	if cfg.PolicySource == config.PolicySourcePostgres {
		var err error
		db, err = repositories.OpenDB(cfg.DB)
		if err != nil {
			log.Fatalf("Failed to open policy database: %v", err)
		}
		defer repositories.CloseDB(db)
	}

	loader, err := repositories.NewPolicyLoader(cfg, db)
	if err != nil {
		log.Fatalf("Invalid policy source: %v", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	table, err := shipping.LoadTable(startupCtx, loader)
	cancel()
	if err != nil {
		log.Fatalf("Failed to load shipping policy: %v", err)
	}

	// Redis is optional: without it quotes are computed on every request.
	var (
		quoteCache  shipping.QuoteCache
		stats       shipping.StatsCollector
		redisHealth handlers.Pinger
		statsReader handlers.StatsReader
	)
	if cfg.Redis.Enabled() {
		client := cache.NewRedisClient(cfg.Redis)
		qc := cache.NewQuoteCache(client, cfg.QuoteCacheTTL)
		defer func() {
			if err := qc.Close(); err != nil {
				log.Printf("⚠️ Failed to close Redis connection: %v", err)
			}
		}()

		if err := qc.HealthCheck(context.Background()); err != nil {
			log.Printf("⚠️ Redis unreachable at startup, quotes will be computed uncached until it recovers: %v", err)
		} else {
			log.Println("✅ Redis connected for quote cache")
		}

		quoteCache = qc
		redisHealth = qc
		if cfg.StatsEnabled {
			collector := cache.NewRedisStatsCollector(client)
			stats = collector
			statsReader = collector
		}
	}

	shippingService := shipping.NewService(
		shipping.NewHolder(table),
		loader,
		quoteCache,
		stats,
		shipping.ServiceConfig{
			MaxBatchStores:   cfg.BatchMaxStores,
			BatchConcurrency: cfg.BatchConcurrency,
		},
	)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "shipfee",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + middleware.RequestIDHeader,
		AllowMethods: "GET,POST,HEAD",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Use("/api/shipping", limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	// Routes
	routes.SetupRoutes(app, routes.Dependencies{
		ShippingService: shippingService,
		Redis:           redisHealth,
		Stats:           statsReader,
		JWTSecret:       cfg.JWTSecret,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("⚠️ Server shutdown error: %v", err)
		}
	}()

	log.Printf("Shipping fee service listening on :%s (policy %s)", cfg.Port, loader.Source())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
