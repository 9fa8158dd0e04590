package usecase_test

import (
	"time"

	"github.com/jhoicas/pricewatch-api/internal/application/usecase"
	"github.com/jhoicas/pricewatch-api/internal/infrastructure/memstore"
)

var latest = time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func newCatalog(s *memstore.Store) *usecase.CatalogUseCase {
	return usecase.NewCatalogUseCase(s.Categories(), s.Products(), s.Stores())
}

func newProducts(s *memstore.Store) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(s.Products(), s.Prices())
}

func newStats(s *memstore.Store, window time.Duration) *usecase.StatsUseCase {
	return usecase.NewStatsUseCase(s.Categories(), s.Products(), s.Stats(), window)
}
