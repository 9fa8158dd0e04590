package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pricewatch-api/internal/domain/entity"
)

// PriceFilter filtros del historial de precios de un producto.
type PriceFilter struct {
	ProductID string
	StoreID   *string
	From      *time.Time // inclusivo
	To        *time.Time // inclusivo
	Cursor    *string
	Limit     int
}

// PriceWithStore precio con la tienda donde se observó.
type PriceWithStore struct {
	Price entity.Price
	Store entity.Store
}

// PriceRepository puerto de lectura del historial de precios.
type PriceRepository interface {
	// History ordena por (scrapedAt, id) descendente y arranca estrictamente después del cursor.
	History(ctx context.Context, f PriceFilter) ([]PriceWithStore, error)
	// Latest los n precios más recientes del producto.
	Latest(ctx context.Context, productID string, n int) ([]PriceWithStore, error)
}
