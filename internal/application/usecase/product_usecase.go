package usecase

import (
	"context"

	"github.com/jhoicas/pricewatch-api/internal/application/dto"
	"github.com/jhoicas/pricewatch-api/internal/application/query"
	"github.com/jhoicas/pricewatch-api/internal/domain"
	"github.com/jhoicas/pricewatch-api/internal/domain/repository"
)

// latestPricesLimit precios que acompañan al detalle de un producto.
const latestPricesLimit = 10

// ProductUseCase lectura de productos y de su historial de precios.
type ProductUseCase struct {
	products repository.ProductRepository
	prices   repository.PriceRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.ProductRepository, prices repository.PriceRepository) *ProductUseCase {
	return &ProductUseCase{products: products, prices: prices}
}

// List página de productos ordenados por (name, id).
func (uc *ProductUseCase) List(ctx context.Context, q query.ProductList) (dto.Page[dto.ProductListItem], error) {
	page := q.Page()
	rows, err := uc.products.List(ctx, repository.ProductFilter{
		CategoryID: q.CategoryID,
		Search:     q.Search,
		Cursor:     page.Cursor,
		Limit:      page.Limit + 1,
	})
	if err != nil {
		return dto.Page[dto.ProductListItem]{}, err
	}
	items := make([]dto.ProductListItem, 0, len(rows))
	for i := range rows {
		items = append(items, dto.ProductListItem{
			ProductResponse: toProductResponse(&rows[i].Product),
			Category:        toCategoryResponse(&rows[i].Category),
		})
	}
	return dto.Paginate(items, page.Limit, func(p dto.ProductListItem) string { return p.ID }), nil
}

// GetByID producto con su categoría y los últimos precios (con tienda). domain.ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductDetailResponse, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	prices, err := uc.prices.Latest(ctx, id, latestPricesLimit)
	if err != nil {
		return nil, err
	}
	return &dto.ProductDetailResponse{
		ProductResponse: toProductResponse(&p.Product),
		Category:        toCategoryResponse(&p.Category),
		Prices:          toPriceWithStoreResponses(prices),
	}, nil
}

// PriceHistory página del historial del producto, del más reciente al más antiguo.
// domain.ErrNotFound si el producto no existe.
func (uc *ProductUseCase) PriceHistory(ctx context.Context, productID string, q query.PriceHistory) (dto.Page[dto.PriceWithStoreResponse], error) {
	ok, err := uc.products.Exists(ctx, productID)
	if err != nil {
		return dto.Page[dto.PriceWithStoreResponse]{}, err
	}
	if !ok {
		return dto.Page[dto.PriceWithStoreResponse]{}, domain.ErrNotFound
	}
	page := q.Page()
	rows, err := uc.prices.History(ctx, repository.PriceFilter{
		ProductID: productID,
		StoreID:   q.StoreID,
		From:      q.From,
		To:        q.To,
		Cursor:    page.Cursor,
		Limit:     page.Limit + 1,
	})
	if err != nil {
		return dto.Page[dto.PriceWithStoreResponse]{}, err
	}
	items := toPriceWithStoreResponses(rows)
	return dto.Paginate(items, page.Limit, func(p dto.PriceWithStoreResponse) string { return p.ID }), nil
}
