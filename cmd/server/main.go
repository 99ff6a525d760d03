// Package main is the entry point for the QR registry server.
// It loads configuration, connects the datastore and cache, and
// starts the HTTP server.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"

	"basepay/internal/config"
	"basepay/internal/handlers"
	"basepay/internal/repositories"
	"basepay/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := repositories.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	if repositories.CacheService != nil {
		if err := repositories.CacheService.HealthCheck(context.Background()); err != nil {
			slog.Warn("redis unavailable, serving without cache", "error", err)
		}
	}

	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Failed to close database connection: %v", err)
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("Failed to close Redis connection: %v", err)
			}
		}
	}()

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Only allow-listed origins may call with credentials; exact or
	// substring match, GET and POST only.
	allowed := config.AllowedOrigins()
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			for _, a := range allowed {
				if origin == a || strings.Contains(origin, a) {
					return true
				}
			}
			return false
		},
		AllowHeaders:     "Origin, Content-Type, Accept, X-Request-ID, X-Client-Version",
		AllowMethods:     "GET,POST",
		AllowCredentials: true,
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupRoutes(app, repositories.DB)

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}
