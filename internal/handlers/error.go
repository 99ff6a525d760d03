package handlers

import (
	"errors"
	"log/slog"

	"basepay/internal/config"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the app-level catch-all. Any handler error that was
// not already written becomes the `{"error": msg}` shape; unexpected
// failures are 500s whose detail is hidden in production mode.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}

	slog.Error("unhandled request error", "path", c.Path(), "error", err)

	msg := "Internal server error"
	if !config.IsProduction() {
		msg = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msg})
}
