package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pricewatch-api/internal/application/query"
	"github.com/jhoicas/pricewatch-api/internal/application/usecase"
	"github.com/jhoicas/pricewatch-api/pkg/logger"
)

// CategoryHandler catálogo de categorías y tiendas.
type CategoryHandler struct {
	uc    *usecase.CatalogUseCase
	cache CachePolicy
	log   *logger.Logger
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CatalogUseCase, cache CachePolicy, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, cache: cache, log: log}
}

// List godoc
// @Summary      Listar categorías
// @Description  Raíces (o hijas de parentId) ordenadas por nombre, con sus subcategorías.
// @Tags         categories
// @Produce      json
// @Param        parentId         query  string  false  "UUID de la categoría padre"
// @Param        includeProducts  query  bool    false  "Incluir productos"
// @Success      200  {object}  dto.Envelope{data=[]dto.CategoryListItem}
// @Failure      400  {object}  dto.Envelope
// @Failure      429  {object}  dto.Envelope
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	q, err := query.NewCategoryList(c.Queries())
	if err != nil {
		return validationError(c, err)
	}
	out, err := h.uc.ListCategories(c.Context(), q)
	if err != nil {
		return respondError(c, h.log, RouteCategories, "Category", err)
	}
	return Success(c, h.cache, out)
}

// GetByID godoc
// @Summary      Obtener categoría
// @Description  Categoría con su padre, subcategorías y hasta 20 productos.
// @Tags         categories
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.Envelope{data=dto.CategoryDetailResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if !query.IsID(id) {
		return NotFound(c, "Category")
	}
	out, err := h.uc.GetCategory(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, RouteCategories, "Category", err)
	}
	return Success(c, h.cache, out)
}

// Stores godoc
// @Summary      Listar tiendas
// @Tags         stores
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.StoreResponse}
// @Failure      429  {object}  dto.Envelope
// @Router       /api/stores [get]
func (h *CategoryHandler) Stores(c *fiber.Ctx) error {
	out, err := h.uc.ListStores(c.Context())
	if err != nil {
		return respondError(c, h.log, RouteStores, "Store", err)
	}
	return Success(c, h.cache, out)
}

// validationError 400 VALIDATION_ERROR con los campos; BAD_REQUEST si err no es de validación.
func validationError(c *fiber.Ctx, err error) error {
	var fields query.FieldErrors
	if errors.As(err, &fields) {
		return ValidationFailed(c, fields)
	}
	return BadRequest(c, err.Error(), nil)
}
