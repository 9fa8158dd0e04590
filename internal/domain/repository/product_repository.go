package repository

import (
	"context"

	"github.com/jhoicas/pricewatch-api/internal/domain/entity"
)

// ProductFilter filtros del listado paginado de productos.
// Limit es la cantidad de filas a traer (el caso de uso pide una más que el tamaño de página).
type ProductFilter struct {
	CategoryID *string
	Search     *string // subcadena, sin distinguir mayúsculas, sobre name y nameEnglish
	Cursor     *string // id de la última fila vista
	Limit      int
}

// ProductWithCategory producto con su categoría (join).
type ProductWithCategory struct {
	Product  entity.Product
	Category entity.Category
}

// ProductRepository puerto de lectura de productos.
type ProductRepository interface {
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*ProductWithCategory, error)
	Exists(ctx context.Context, id string) (bool, error)
	// List ordena por (name, id) y arranca estrictamente después del cursor.
	List(ctx context.Context, f ProductFilter) ([]ProductWithCategory, error)
	// ListByCategories productos de las categorías dadas ordenados por nombre; limit <= 0 = sin límite.
	ListByCategories(ctx context.Context, categoryIDs []string, limit int) ([]*entity.Product, error)
	IDsByCategories(ctx context.Context, categoryIDs []string) ([]string, error)
}
