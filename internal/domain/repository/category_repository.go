package repository

import (
	"context"

	"github.com/jhoicas/pricewatch-api/internal/domain/entity"
)

// CategoryRepository puerto de lectura de categorías. Todas las listas van ordenadas por nombre.
type CategoryRepository interface {
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	// ListByParent lista las hijas de parentID; con parentID nil lista las raíces.
	ListByParent(ctx context.Context, parentID *string) ([]*entity.Category, error)
	// ListChildren lista las hijas directas de cualquiera de los padres indicados.
	ListChildren(ctx context.Context, parentIDs []string) ([]*entity.Category, error)
}
