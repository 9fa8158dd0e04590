package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pricewatch-api/internal/application/query"
	"github.com/jhoicas/pricewatch-api/internal/application/usecase"
	"github.com/jhoicas/pricewatch-api/pkg/logger"
)

// ProductHandler productos e historial de precios.
type ProductHandler struct {
	uc    *usecase.ProductUseCase
	cache CachePolicy
	log   *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, cache CachePolicy, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, cache: cache, log: log}
}

// List godoc
// @Summary      Listar productos
// @Description  Paginado por cursor, ordenado por nombre. search busca en name y nameEnglish sin distinguir mayúsculas.
// @Tags         products
// @Produce      json
// @Param        cursor      query  string  false  "ID del último producto de la página anterior"
// @Param        limit       query  int     false  "Tamaño de página (1-100)"  default(20)
// @Param        categoryId  query  string  false  "UUID de la categoría"
// @Param        search      query  string  false  "Texto a buscar (1-100)"
// @Success      200  {object}  dto.Envelope{data=[]dto.ProductListItem,meta=dto.Meta}
// @Failure      400  {object}  dto.Envelope
// @Failure      429  {object}  dto.Envelope
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	q, err := query.NewProductList(c.Queries())
	if err != nil {
		return validationError(c, err)
	}
	page, err := h.uc.List(c.Context(), q)
	if err != nil {
		return respondError(c, h.log, RouteProducts, "Product", err)
	}
	return Paginated(c, h.cache, page)
}

// GetByID godoc
// @Summary      Obtener producto
// @Description  Producto con su categoría y los 10 precios más recientes (con tienda).
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.Envelope{data=dto.ProductDetailResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if !query.IsID(id) {
		return NotFound(c, "Product")
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, RouteProducts, "Product", err)
	}
	return Success(c, h.cache, out)
}

// Prices godoc
// @Summary      Historial de precios
// @Description  Paginado por cursor, del más reciente al más antiguo.
// @Tags         products
// @Produce      json
// @Param        id       path   string  true   "ID del producto"
// @Param        cursor   query  string  false  "ID del último precio de la página anterior"
// @Param        limit    query  int     false  "Tamaño de página (1-100)"  default(20)
// @Param        storeId  query  string  false  "UUID de la tienda"
// @Param        from     query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to       query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Success      200  {object}  dto.Envelope{data=[]dto.PriceWithStoreResponse,meta=dto.Meta}
// @Failure      400  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/products/{id}/prices [get]
func (h *ProductHandler) Prices(c *fiber.Ctx) error {
	q, err := query.NewPriceHistory(c.Queries())
	if err != nil {
		return validationError(c, err)
	}
	id := c.Params("id")
	if !query.IsID(id) {
		return NotFound(c, "Product")
	}
	page, err := h.uc.PriceHistory(c.Context(), id, q)
	if err != nil {
		return respondError(c, h.log, RoutePrices, "Product", err)
	}
	return Paginated(c, h.cache, page)
}
