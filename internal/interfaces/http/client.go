package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ClientID identifica al cliente detrás del proxy: primer salto de X-Forwarded-For, luego
// X-Real-IP, y "unknown" si no hay ninguno.
func ClientID(c *fiber.Ctx) string {
	if fwd := c.Get(fiber.HeaderXForwardedFor); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if ip := strings.TrimSpace(c.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return "unknown"
}
