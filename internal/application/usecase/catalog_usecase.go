package usecase

import (
	"context"

	"github.com/jhoicas/pricewatch-api/internal/application/dto"
	"github.com/jhoicas/pricewatch-api/internal/application/query"
	"github.com/jhoicas/pricewatch-api/internal/domain"
	"github.com/jhoicas/pricewatch-api/internal/domain/entity"
	"github.com/jhoicas/pricewatch-api/internal/domain/repository"
)

// categoryProductsLimit productos que acompañan al detalle de una categoría.
const categoryProductsLimit = 20

// CatalogUseCase lectura de categorías y tiendas.
type CatalogUseCase struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	stores     repository.StoreRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(categories repository.CategoryRepository, products repository.ProductRepository, stores repository.StoreRepository) *CatalogUseCase {
	return &CatalogUseCase{categories: categories, products: products, stores: stores}
}

// ListCategories lista las raíces (o las hijas de q.ParentID) con sus hijas directas.
// Con q.IncludeProducts agrega todos los productos de cada categoría.
func (uc *CatalogUseCase) ListCategories(ctx context.Context, q query.CategoryList) ([]dto.CategoryListItem, error) {
	cats, err := uc.categories.ListByParent(ctx, q.ParentID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryListItem, 0, len(cats))
	if len(cats) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(cats))
	for _, c := range cats {
		ids = append(ids, c.ID)
	}

	children, err := uc.categories.ListChildren(ctx, ids)
	if err != nil {
		return nil, err
	}
	childrenByParent := make(map[string][]*entity.Category, len(cats))
	for _, ch := range children {
		if ch.ParentID != nil {
			childrenByParent[*ch.ParentID] = append(childrenByParent[*ch.ParentID], ch)
		}
	}

	var productsByCategory map[string][]*entity.Product
	if q.IncludeProducts {
		products, err := uc.products.ListByCategories(ctx, ids, 0)
		if err != nil {
			return nil, err
		}
		productsByCategory = make(map[string][]*entity.Product, len(cats))
		for _, p := range products {
			productsByCategory[p.CategoryID] = append(productsByCategory[p.CategoryID], p)
		}
	}

	for _, c := range cats {
		item := dto.CategoryListItem{
			CategoryResponse: toCategoryResponse(c),
			Children:         toCategoryResponses(childrenByParent[c.ID]),
		}
		if q.IncludeProducts {
			products := toProductResponses(productsByCategory[c.ID])
			item.Products = &products
		}
		out = append(out, item)
	}
	return out, nil
}

// GetCategory devuelve la categoría con su padre, sus hijas y los primeros productos por nombre.
// domain.ErrNotFound si no existe.
func (uc *CatalogUseCase) GetCategory(ctx context.Context, id string) (*dto.CategoryDetailResponse, error) {
	cat, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}

	out := &dto.CategoryDetailResponse{CategoryResponse: toCategoryResponse(cat)}
	if cat.ParentID != nil {
		parent, err := uc.categories.GetByID(ctx, *cat.ParentID)
		if err != nil {
			return nil, err
		}
		if parent != nil {
			p := toCategoryResponse(parent)
			out.Parent = &p
		}
	}

	children, err := uc.categories.ListChildren(ctx, []string{cat.ID})
	if err != nil {
		return nil, err
	}
	out.Children = toCategoryResponses(children)

	products, err := uc.products.ListByCategories(ctx, []string{cat.ID}, categoryProductsLimit)
	if err != nil {
		return nil, err
	}
	out.Products = toProductResponses(products)
	return out, nil
}

// ListStores todas las tiendas ordenadas por nombre.
func (uc *CatalogUseCase) ListStores(ctx context.Context) ([]dto.StoreResponse, error) {
	stores, err := uc.stores.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, toStoreResponse(s))
	}
	return out, nil
}
