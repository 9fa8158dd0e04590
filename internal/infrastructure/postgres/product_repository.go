package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pricewatch-api/internal/domain/entity"
	"github.com/jhoicas/pricewatch-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `p.id, p."externalId", p.code, p.name, p."nameEnglish", p.unit, p."categoryId", p."createdAt", p."updatedAt"`

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func productDest(p *entity.Product) []any {
	return []any{&p.ID, &p.ExternalID, &p.Code, &p.Name, &p.NameEnglish, &p.Unit, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt}
}

func categoryDest(c *entity.Category) []any {
	return []any{&c.ID, &c.ExternalID, &c.Code, &c.Name, &c.NameEnglish, &c.ParentID, &c.CreatedAt, &c.UpdatedAt}
}

func scanProductWithCategory(row scanner, out *repository.ProductWithCategory) error {
	return row.Scan(append(productDest(&out.Product), categoryDest(&out.Category)...)...)
}

// GetByID obtiene un producto con su categoría.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*repository.ProductWithCategory, error) {
	query := `SELECT ` + productColumns + `, ` + categoryColumns + `
		FROM "Product" p JOIN "Category" c ON c.id = p."categoryId"
		WHERE p.id = $1`
	var out repository.ProductWithCategory
	if err := scanProductWithCategory(r.q.QueryRow(ctx, query, id), &out); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &out, nil
}

// Exists indica si el producto existe.
func (r *ProductRepo) Exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM "Product" WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("product exists: %w", err)
	}
	return ok, nil
}

// List página por (name, id). Un cursor inexistente hace NULL la comparación y la página sale vacía.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]repository.ProductWithCategory, error) {
	var (
		a     args
		conds []string
	)
	if f.CategoryID != nil {
		conds = append(conds, `p."categoryId" = `+a.add(*f.CategoryID))
	}
	if f.Search != nil {
		n := a.add(likeEscape(*f.Search))
		conds = append(conds, fmt.Sprintf(`(p.name ILIKE '%%' || %s || '%%' OR p."nameEnglish" ILIKE '%%' || %s || '%%')`, n, n))
	}
	if f.Cursor != nil {
		conds = append(conds, `(p.name, p.id) > (SELECT name, id FROM "Product" WHERE id = `+a.add(*f.Cursor)+`)`)
	}
	query := `SELECT ` + productColumns + `, ` + categoryColumns + `
		FROM "Product" p JOIN "Category" c ON c.id = p."categoryId"` +
		where(conds) + `
		ORDER BY p.name, p.id
		LIMIT ` + a.add(f.Limit)

	rows, err := r.q.Query(ctx, query, a...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := []repository.ProductWithCategory{}
	for rows.Next() {
		var row repository.ProductWithCategory
		if err := scanProductWithCategory(rows, &row); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// ListByCategories productos de las categorías dadas ordenados por nombre; limit <= 0 sin límite.
func (r *ProductRepo) ListByCategories(ctx context.Context, categoryIDs []string, limit int) ([]*entity.Product, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}
	a := args{categoryIDs}
	query := `SELECT ` + productColumns + ` FROM "Product" p
		WHERE p."categoryId" = ANY($1)
		ORDER BY p.name, p.id`
	if limit > 0 {
		query += ` LIMIT ` + a.add(limit)
	}
	rows, err := r.q.Query(ctx, query, a...)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(productDest(&p)...); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// IDsByCategories ids de los productos de las categorías dadas.
func (r *ProductRepo) IDsByCategories(ctx context.Context, categoryIDs []string) ([]string, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `SELECT id FROM "Product" WHERE "categoryId" = ANY($1) ORDER BY id`, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("list product ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan product ids: %w", err)
	}
	return ids, nil
}
