package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck reports liveness unconditionally.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
