package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pricewatch-api/internal/domain/entity"
	"github.com/jhoicas/pricewatch-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `c.id, c."externalId", c.code, c.name, c."nameEnglish", c."parentId", c."createdAt", c."updatedAt"`

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func scanCategory(row scanner, c *entity.Category) error {
	return row.Scan(categoryDest(c)...)
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM "Category" c WHERE c.id = $1`
	var c entity.Category
	if err := scanCategory(r.q.QueryRow(ctx, query, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// ListByParent lista las hijas de parentID, o las raíces si es nil.
func (r *CategoryRepo) ListByParent(ctx context.Context, parentID *string) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM "Category" c
		WHERE c."parentId" IS NOT DISTINCT FROM $1::text
		ORDER BY c.name, c.id`
	return r.list(ctx, query, parentID)
}

// ListChildren lista las hijas directas de los padres dados.
func (r *CategoryRepo) ListChildren(ctx context.Context, parentIDs []string) ([]*entity.Category, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + categoryColumns + ` FROM "Category" c
		WHERE c."parentId" = ANY($1)
		ORDER BY c.name, c.id`
	return r.list(ctx, query, parentIDs)
}

func (r *CategoryRepo) list(ctx context.Context, query string, params ...any) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := scanCategory(rows, &c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
