package http

import (
	"github.com/gofiber/fiber/v2"
)

// CORS agrega las cabeceras CORS a toda respuesta de la API. Access-Control-Allow-Origin solo se
// envía si el Origin está en allowed. Los preflight OPTIONS responden 204 sin llegar al handler.
func CORS(allowed []string) fiber.Handler {
	origins := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		origins[o] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowMethods, "GET, OPTIONS")
		c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type")
		c.Set(fiber.HeaderAccessControlMaxAge, "86400")
		c.Vary(fiber.HeaderOrigin)
		if origin := c.Get(fiber.HeaderOrigin); origin != "" {
			if _, ok := origins[origin]; ok {
				c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
			}
		}
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}
