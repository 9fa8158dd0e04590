package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger dependencia cuya disponibilidad se reporta en /health (el pool de PostgreSQL).
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health 200 si la base responde; 503 si no. Sin Pinger solo reporta que el proceso vive.
func Health(service string, db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store")
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "unavailable", "service": service, "database": "down",
				})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": service})
	}
}
