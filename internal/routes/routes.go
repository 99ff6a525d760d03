// Package routes wires repositories, services, and handlers onto the
// Fiber app.
package routes

import (
	"time"

	"basepay/internal/handlers"
	"basepay/internal/repositories"
	"basepay/internal/services/qrcode"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

// SetupRoutes configures the API surface: the rate limiter on the
// /api prefix, the QR record endpoints, and the health check.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	qrRepo := repositories.NewQRCodeRepository(db)

	var recordCache qrcode.RecordCache
	if repositories.CacheService != nil {
		recordCache = repositories.CacheService
	}

	qrService := qrcode.NewService(qrRepo, recordCache)
	qrHandler := handlers.NewQRHandler(qrService)

	api := app.Group("/api")

	api.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 15 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	api.Post("/qr-codes", qrHandler.CreateQRCode)
	api.Get("/qr-codes/:wallet_address/:website_url", qrHandler.GetQRCode)
	api.Get("/health", handlers.HealthCheck)
}
