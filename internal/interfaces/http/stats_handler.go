package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pricewatch-api/internal/application/query"
	"github.com/jhoicas/pricewatch-api/internal/application/usecase"
	"github.com/jhoicas/pricewatch-api/pkg/logger"
)

// StatsHandler estadísticas globales, por producto y por categoría.
type StatsHandler struct {
	uc    *usecase.StatsUseCase
	cache CachePolicy
	log   *logger.Logger
}

// NewStatsHandler construye el handler.
func NewStatsHandler(uc *usecase.StatsUseCase, cache CachePolicy, log *logger.Logger) *StatsHandler {
	return &StatsHandler{uc: uc, cache: cache, log: log}
}

// Global godoc
// @Summary      Estadísticas globales
// @Description  Totales del catálogo, última captura y rango histórico de precios (strings decimales).
// @Tags         stats
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.GlobalStatsResponse}
// @Failure      429  {object}  dto.Envelope
// @Failure      500  {object}  dto.Envelope
// @Router       /api/stats [get]
func (h *StatsHandler) Global(c *fiber.Ctx) error {
	out, err := h.uc.Global(c.Context())
	if err != nil {
		return respondError(c, h.log, RouteStats, "Stats", err)
	}
	return Success(c, h.cache, out)
}

// Product godoc
// @Summary      Estadísticas de un producto
// @Description  Mínimo, máximo y promedio de la última captura, por tienda y por distrito.
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.Envelope{data=dto.ProductStatsResponse}
// @Failure      404  {object}  dto.Envelope
// @Failure      429  {object}  dto.Envelope
// @Router       /api/products/{id}/stats [get]
func (h *StatsHandler) Product(c *fiber.Ctx) error {
	id := c.Params("id")
	if !query.IsID(id) {
		return NotFound(c, "Product")
	}
	out, err := h.uc.ProductStats(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, RouteProductStats, "Product", err)
	}
	return Success(c, h.cache, out)
}

// Category godoc
// @Summary      Estadísticas de una categoría
// @Description  Cantidad de productos (incluye subcategorías directas) y los 10 más baratos de la última captura.
// @Tags         categories
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.Envelope{data=dto.CategoryStatsResponse}
// @Failure      404  {object}  dto.Envelope
// @Failure      429  {object}  dto.Envelope
// @Router       /api/categories/{id}/stats [get]
func (h *StatsHandler) Category(c *fiber.Ctx) error {
	id := c.Params("id")
	if !query.IsID(id) {
		return NotFound(c, "Category")
	}
	out, err := h.uc.CategoryStats(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, RouteCategoryStats, "Category", err)
	}
	return Success(c, h.cache, out)
}
