package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/pricewatch-api/internal/application/dto"
	"github.com/jhoicas/pricewatch-api/internal/domain"
	"github.com/jhoicas/pricewatch-api/internal/domain/pricing"
	"github.com/jhoicas/pricewatch-api/internal/domain/repository"
)

// cheapestLimit productos devueltos en las estadísticas de categoría.
const cheapestLimit = 10

// StatsUseCase estadísticas agregadas sobre el historial de precios.
type StatsUseCase struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	stats      repository.StatsRepository
	window     time.Duration
}

// NewStatsUseCase construye el caso de uso. window agrupa las filas de una misma corrida del
// scraper; si no es positiva se usa pricing.DefaultScrapeWindow.
func NewStatsUseCase(categories repository.CategoryRepository, products repository.ProductRepository, stats repository.StatsRepository, window time.Duration) *StatsUseCase {
	if window <= 0 {
		window = pricing.DefaultScrapeWindow
	}
	return &StatsUseCase{categories: categories, products: products, stats: stats, window: window}
}

// Global totales del catálogo, última captura y rango histórico de precios.
// Las consultas son independientes y corren en paralelo.
func (uc *StatsUseCase) Global(ctx context.Context) (*dto.GlobalStatsResponse, error) {
	var (
		out    dto.GlobalStatsResponse
		latest *time.Time
		rng    repository.PriceRange
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Counts.Categories, err = uc.stats.CountCategories(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Counts.Products, err = uc.stats.CountProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Counts.Stores, err = uc.stats.CountStores(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Counts.PriceRecords, err = uc.stats.CountPrices(gctx)
		return err
	})
	g.Go(func() (err error) {
		latest, err = uc.stats.LatestScrapedAt(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		rng, err = uc.stats.PriceRange(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.LastScrapedAt = latest
	out.PriceRange = dto.PriceRangeResponse{
		Min: decimalString(rng.Min),
		Max: decimalString(rng.Max),
		Avg: decimalString(rng.Avg),
	}
	return &out, nil
}

// ProductStats agregados de la última captura del producto, por tienda y por distrito.
// Sin precios devuelve current nil y listas vacías. domain.ErrNotFound si el producto no existe.
func (uc *StatsUseCase) ProductStats(ctx context.Context, productID string) (*dto.ProductStatsResponse, error) {
	ok, err := uc.products.Exists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}

	out := &dto.ProductStatsResponse{ByStore: []dto.StoreStats{}, ByDistrict: []dto.DistrictStats{}}
	latest, err := uc.stats.LatestScrapedAt(ctx, []string{productID})
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return out, nil
	}
	since := pricing.WindowStart(*latest, uc.window)

	var (
		current   repository.CurrentSummary
		stores    []repository.StoreStatsResult
		districts []repository.DistrictStatsResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		current, err = uc.stats.CurrentSummary(gctx, productID, since)
		return err
	})
	g.Go(func() (err error) {
		stores, err = uc.stats.StoreBreakdown(gctx, productID, since)
		return err
	})
	g.Go(func() (err error) {
		districts, err = uc.stats.DistrictBreakdown(gctx, productID, since)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.Current = &dto.CurrentStats{
		Min:        current.Min,
		Max:        current.Max,
		Avg:        current.Avg,
		StoreCount: current.Count,
		ScrapedAt:  *latest,
	}
	for _, s := range stores {
		out.ByStore = append(out.ByStore, dto.StoreStats{
			StoreID:    s.StoreID,
			StoreName:  s.StoreName,
			StoreChain: s.StoreChain,
			Current:    s.LatestPrice,
			Min:        s.MinPrice,
			Max:        s.MaxPrice,
			Avg:        s.AvgPrice,
			PriceCount: s.PriceCount,
		})
	}
	for _, d := range districts {
		out.ByDistrict = append(out.ByDistrict, dto.DistrictStats{
			District:   d.District,
			Min:        d.MinPrice,
			Max:        d.MaxPrice,
			Avg:        d.AvgPrice,
			StoreCount: d.StoreCount,
		})
	}
	return out, nil
}

// CategoryStats productos de la categoría y sus subcategorías directas, con los más baratos de la
// última captura del conjunto. domain.ErrNotFound si la categoría no existe.
func (uc *StatsUseCase) CategoryStats(ctx context.Context, categoryID string) (*dto.CategoryStatsResponse, error) {
	cat, err := uc.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}

	children, err := uc.categories.ListChildren(ctx, []string{cat.ID})
	if err != nil {
		return nil, err
	}
	categoryIDs := make([]string, 0, len(children)+1)
	categoryIDs = append(categoryIDs, cat.ID)
	for _, ch := range children {
		categoryIDs = append(categoryIDs, ch.ID)
	}

	productIDs, err := uc.products.IDsByCategories(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}
	out := &dto.CategoryStatsResponse{ProductCount: len(productIDs), Cheapest: []dto.CheapestProduct{}}
	if len(productIDs) == 0 {
		return out, nil
	}

	latest, err := uc.stats.LatestScrapedAt(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return out, nil
	}
	out.ScrapedAt = latest

	cheapest, err := uc.stats.CheapestProducts(ctx, productIDs, pricing.WindowStart(*latest, uc.window), cheapestLimit)
	if err != nil {
		return nil, err
	}
	for _, c := range cheapest {
		out.Cheapest = append(out.Cheapest, dto.CheapestProduct{
			ProductID:   c.ProductID,
			Name:        c.Name,
			NameEnglish: c.NameEnglish,
			MinPrice:    c.MinPrice,
		})
	}
	return out, nil
}

func decimalString(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.String()
	return &s
}
