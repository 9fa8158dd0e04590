package repository

import (
	"context"

	"github.com/jhoicas/pricewatch-api/internal/domain/entity"
)

// StoreRepository puerto de lectura de tiendas.
type StoreRepository interface {
	// List todas las tiendas ordenadas por nombre.
	List(ctx context.Context) ([]*entity.Store, error)
}
