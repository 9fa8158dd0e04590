package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pricewatch-api/internal/domain"
	"github.com/jhoicas/pricewatch-api/pkg/logger"
)

// ErrorHandler responde con el envelope de error los errores y panics que no manejó un handler.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
			if fe.Code == fiber.StatusNotFound {
				return NotFound(c, "Route")
			}
			return Error(c, fe.Code, CodeBadRequest, fe.Message, nil)
		}
		log.Error().Err(err).Str("request_id", RequestID(c)).Str("path", c.Path()).Msg("error no controlado")
		return InternalError(c)
	}
}

// respondError traduce errores de casos de uso: ErrNotFound a 404, el resto a 500 con log.
func respondError(c *fiber.Ctx, log *logger.Logger, route, resource string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return NotFound(c, resource)
	}
	log.Error().Err(err).Str("route", route).Str("request_id", RequestID(c)).Msg("fallo al consultar")
	return InternalError(c)
}
