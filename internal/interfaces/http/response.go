package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pricewatch-api/internal/application/dto"
)

// Códigos de error del envelope.
const (
	CodeNotFound   = "NOT_FOUND"
	CodeBadRequest = "BAD_REQUEST"
	CodeValidation = "VALIDATION_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
	CodeRateLimit  = "RATE_LIMIT"
)

// DefaultSMaxAge segundos de caché compartida para respuestas exitosas.
const DefaultSMaxAge = 1800

// CachePolicy Cache-Control de las respuestas exitosas: s-maxage=S, stale-while-revalidate=2S.
type CachePolicy struct {
	SMaxAge int
}

// DefaultCachePolicy s-maxage de 30 minutos.
func DefaultCachePolicy() CachePolicy {
	return CachePolicy{SMaxAge: DefaultSMaxAge}
}

// Header valor de Cache-Control.
func (p CachePolicy) Header() string {
	return fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate=%d", p.SMaxAge, 2*p.SMaxAge)
}

// Success 200 con data y meta null.
func Success(c *fiber.Ctx, cache CachePolicy, data any) error {
	return SuccessWithMeta(c, cache, data, nil)
}

// SuccessWithMeta 200 con data y meta.
func SuccessWithMeta(c *fiber.Ctx, cache CachePolicy, data any, meta *dto.Meta) error {
	c.Set(fiber.HeaderCacheControl, cache.Header())
	return c.Status(fiber.StatusOK).JSON(dto.Envelope{Data: data, Meta: meta})
}

// Paginated 200 con los elementos de la página y su cursor.
func Paginated[T any](c *fiber.Ctx, cache CachePolicy, page dto.Page[T]) error {
	meta := page.Meta
	return SuccessWithMeta(c, cache, page.Items, &meta)
}

// Error envelope de error, sin Cache-Control.
func Error(c *fiber.Ctx, status int, code, message string, fields map[string]string) error {
	c.Response().Header.Del(fiber.HeaderCacheControl)
	return c.Status(status).JSON(dto.Envelope{
		Error: &dto.APIError{Code: code, Message: message, Fields: fields},
	})
}

// NotFound 404 "<resource> not found".
func NotFound(c *fiber.Ctx, resource string) error {
	return Error(c, fiber.StatusNotFound, CodeNotFound, resource+" not found", nil)
}

// BadRequest 400 con mensaje libre.
func BadRequest(c *fiber.Ctx, message string, fields map[string]string) error {
	return Error(c, fiber.StatusBadRequest, CodeBadRequest, message, fields)
}

// ValidationFailed 400 con los mensajes por campo.
func ValidationFailed(c *fiber.Ctx, fields map[string]string) error {
	return Error(c, fiber.StatusBadRequest, CodeValidation, "Validation failed", fields)
}

// InternalError 500 genérico; la causa solo va al log.
func InternalError(c *fiber.Ctx) error {
	return Error(c, fiber.StatusInternalServerError, CodeInternal, "Internal server error", nil)
}

// TooManyRequests 429.
func TooManyRequests(c *fiber.Ctx) error {
	return Error(c, fiber.StatusTooManyRequests, CodeRateLimit, "Too many requests", nil)
}
