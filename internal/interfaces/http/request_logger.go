package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/pricewatch-api/pkg/logger"
	"github.com/jhoicas/pricewatch-api/pkg/metrics"
)

const headerRequestID = "X-Request-ID"

// RequestLogger registra cada petición con zerolog y la cuenta en rec (si no es nil).
// Reutiliza X-Request-ID entrante o genera uno nuevo y lo devuelve en la respuesta.
func RequestLogger(log *logger.Logger, rec *metrics.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		id := c.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(headerRequestID, id)
		c.Locals("requestID", id)

		if err := c.Next(); err != nil {
			// El status final lo decide el ErrorHandler; se invoca acá para loguearlo.
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		latency := time.Since(start)
		route := c.Route().Path
		if rec != nil {
			rec.ObserveRequest(route, status, latency)
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("request_id", id).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", latency).
			Str("client", ClientID(c)).
			Msg("request")
		return nil
	}
}

// RequestID id de la petición en curso.
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestID").(string)
	return id
}
