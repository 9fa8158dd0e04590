package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pricewatch-api/internal/domain/repository"
)

var _ repository.PriceRepository = (*PriceRepo)(nil)

// PriceRepo historial de precios sobre PostgreSQL.
type PriceRepo struct {
	q Querier
}

// NewPriceRepository construye el adaptador de precios.
func NewPriceRepository(q Querier) *PriceRepo {
	return &PriceRepo{q: q}
}

// History página por (scrapedAt, id) descendente con filtros opcionales de tienda y fechas.
func (r *PriceRepo) History(ctx context.Context, f repository.PriceFilter) ([]repository.PriceWithStore, error) {
	a := args{f.ProductID}
	conds := []string{`pr."productId" = $1`}
	if f.StoreID != nil {
		conds = append(conds, `pr."storeId" = `+a.add(*f.StoreID))
	}
	if f.From != nil {
		conds = append(conds, `pr."scrapedAt" >= `+a.add(*f.From))
	}
	if f.To != nil {
		conds = append(conds, `pr."scrapedAt" <= `+a.add(*f.To))
	}
	if f.Cursor != nil {
		conds = append(conds, `(pr."scrapedAt", pr.id) < (SELECT "scrapedAt", id FROM "Price" WHERE id = `+a.add(*f.Cursor)+`)`)
	}
	query := `SELECT pr.id, pr."productId", pr."storeId", pr.price, pr."scrapedAt", ` + storeColumns + `
		FROM "Price" pr JOIN "Store" s ON s.id = pr."storeId"` +
		where(conds) + `
		ORDER BY pr."scrapedAt" DESC, pr.id DESC
		LIMIT ` + a.add(f.Limit)

	rows, err := r.q.Query(ctx, query, a...)
	if err != nil {
		return nil, fmt.Errorf("price history: %w", err)
	}
	defer rows.Close()
	list := []repository.PriceWithStore{}
	for rows.Next() {
		var row repository.PriceWithStore
		p := &row.Price
		dest := append([]any{&p.ID, &p.ProductID, &p.StoreID, &p.Price, &p.ScrapedAt}, storeDest(&row.Store)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// Latest los n precios más recientes del producto.
func (r *PriceRepo) Latest(ctx context.Context, productID string, n int) ([]repository.PriceWithStore, error) {
	return r.History(ctx, repository.PriceFilter{ProductID: productID, Limit: n})
}
