package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pricewatch-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas agregadas de solo lectura sobre el historial de precios.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador de estadísticas.
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

func (r *StatsRepo) count(ctx context.Context, table string) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM `+pgx.Identifier{table}.Sanitize()).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

func (r *StatsRepo) CountCategories(ctx context.Context) (int64, error) { return r.count(ctx, "Category") }
func (r *StatsRepo) CountProducts(ctx context.Context) (int64, error)   { return r.count(ctx, "Product") }
func (r *StatsRepo) CountStores(ctx context.Context) (int64, error)     { return r.count(ctx, "Store") }
func (r *StatsRepo) CountPrices(ctx context.Context) (int64, error)     { return r.count(ctx, "Price") }

// LatestScrapedAt max(scrapedAt) de los productos dados, o de todo el historial si productIDs es nil.
func (r *StatsRepo) LatestScrapedAt(ctx context.Context, productIDs []string) (*time.Time, error) {
	query := `SELECT MAX("scrapedAt") FROM "Price"`
	var a args
	if productIDs != nil {
		query += ` WHERE "productId" = ANY(` + a.add(productIDs) + `)`
	}
	var latest *time.Time
	if err := r.q.QueryRow(ctx, query, a...).Scan(&latest); err != nil {
		return nil, fmt.Errorf("latest scrape: %w", err)
	}
	return latest, nil
}

// PriceRange min/max/avg de todo el historial, en NUMERIC.
func (r *StatsRepo) PriceRange(ctx context.Context) (repository.PriceRange, error) {
	var out repository.PriceRange
	err := r.q.QueryRow(ctx, `SELECT MIN(price), MAX(price), AVG(price) FROM "Price"`).Scan(&out.Min, &out.Max, &out.Avg)
	if err != nil {
		return repository.PriceRange{}, fmt.Errorf("price range: %w", err)
	}
	return out, nil
}

// CurrentSummary agregados del producto desde since.
func (r *StatsRepo) CurrentSummary(ctx context.Context, productID string, since time.Time) (repository.CurrentSummary, error) {
	const query = `
	SELECT MIN(price)::float8, MAX(price)::float8, AVG(price)::float8, COUNT(*)::int
	FROM "Price"
	WHERE "productId" = $1 AND "scrapedAt" >= $2`
	var out repository.CurrentSummary
	if err := r.q.QueryRow(ctx, query, productID, since).Scan(&out.Min, &out.Max, &out.Avg, &out.Count); err != nil {
		return repository.CurrentSummary{}, fmt.Errorf("current summary: %w", err)
	}
	return out, nil
}

// StoreBreakdown agregados por tienda desde since; latestPrice es la fila más reciente de la tienda.
func (r *StatsRepo) StoreBreakdown(ctx context.Context, productID string, since time.Time) ([]repository.StoreStatsResult, error) {
	const query = `
	SELECT
	    s.id,
	    COALESCE(NULLIF(s."nameEnglish", ''), s.name) AS "storeName",
	    s.chain,
	    (
	        SELECT p2.price::float8
	        FROM "Price" p2
	        WHERE p2."storeId" = s.id AND p2."productId" = $1 AND p2."scrapedAt" >= $2
	        ORDER BY p2."scrapedAt" DESC, p2.id DESC
	        LIMIT 1
	    )                       AS "latestPrice",
	    MIN(p.price)::float8    AS "minPrice",
	    MAX(p.price)::float8    AS "maxPrice",
	    AVG(p.price)::float8    AS "avgPrice",
	    COUNT(p.id)::int        AS "priceCount"
	FROM "Price" p
	JOIN "Store" s ON s.id = p."storeId"
	WHERE p."productId" = $1 AND p."scrapedAt" >= $2
	GROUP BY s.id, s.name, s."nameEnglish", s.chain
	ORDER BY "latestPrice" ASC, s.id`

	rows, err := r.q.Query(ctx, query, productID, since)
	if err != nil {
		return nil, fmt.Errorf("store breakdown: %w", err)
	}
	defer rows.Close()
	var list []repository.StoreStatsResult
	for rows.Next() {
		var s repository.StoreStatsResult
		if err := rows.Scan(&s.StoreID, &s.StoreName, &s.StoreChain, &s.LatestPrice,
			&s.MinPrice, &s.MaxPrice, &s.AvgPrice, &s.PriceCount); err != nil {
			return nil, fmt.Errorf("scan store stats: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// DistrictBreakdown agregados por distrito desde since; ignora tiendas sin distrito.
func (r *StatsRepo) DistrictBreakdown(ctx context.Context, productID string, since time.Time) ([]repository.DistrictStatsResult, error) {
	const query = `
	SELECT
	    s.district,
	    MIN(p.price)::float8      AS "minPrice",
	    MAX(p.price)::float8      AS "maxPrice",
	    AVG(p.price)::float8      AS "avgPrice",
	    COUNT(DISTINCT s.id)::int AS "storeCount"
	FROM "Price" p
	JOIN "Store" s ON s.id = p."storeId"
	WHERE p."productId" = $1
	  AND p."scrapedAt" >= $2
	  AND s.district IS NOT NULL
	GROUP BY s.district
	ORDER BY "avgPrice" ASC, s.district`

	rows, err := r.q.Query(ctx, query, productID, since)
	if err != nil {
		return nil, fmt.Errorf("district breakdown: %w", err)
	}
	defer rows.Close()
	var list []repository.DistrictStatsResult
	for rows.Next() {
		var d repository.DistrictStatsResult
		if err := rows.Scan(&d.District, &d.MinPrice, &d.MaxPrice, &d.AvgPrice, &d.StoreCount); err != nil {
			return nil, fmt.Errorf("scan district stats: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// CheapestProducts MIN(price) por producto desde since, ascendente, hasta limit filas.
func (r *StatsRepo) CheapestProducts(ctx context.Context, productIDs []string, since time.Time, limit int) ([]repository.CheapestProductResult, error) {
	const query = `
	SELECT
	    pr.id,
	    pr.name,
	    pr."nameEnglish",
	    MIN(p.price)::float8 AS "minPrice"
	FROM "Price" p
	JOIN "Product" pr ON pr.id = p."productId"
	WHERE p."productId" = ANY($1)
	  AND p."scrapedAt" >= $2
	GROUP BY pr.id, pr.name, pr."nameEnglish"
	ORDER BY "minPrice" ASC, pr.id
	LIMIT $3`

	rows, err := r.q.Query(ctx, query, productIDs, since, limit)
	if err != nil {
		return nil, fmt.Errorf("cheapest products: %w", err)
	}
	defer rows.Close()
	var list []repository.CheapestProductResult
	for rows.Next() {
		var c repository.CheapestProductResult
		if err := rows.Scan(&c.ProductID, &c.Name, &c.NameEnglish, &c.MinPrice); err != nil {
			return nil, fmt.Errorf("scan cheapest product: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
