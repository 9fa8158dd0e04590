package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pricewatch-api/internal/domain/entity"
	"github.com/jhoicas/pricewatch-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

const storeColumns = `s.id, s."externalId", s.name, s."nameEnglish", s.chain, s.district, s.location, s."createdAt", s."updatedAt"`

// StoreRepo implementación de StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador de tiendas.
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

func storeDest(s *entity.Store) []any {
	return []any{&s.ID, &s.ExternalID, &s.Name, &s.NameEnglish, &s.Chain, &s.District, &s.Location, &s.CreatedAt, &s.UpdatedAt}
}

// List todas las tiendas ordenadas por nombre.
func (r *StoreRepo) List(ctx context.Context) ([]*entity.Store, error) {
	rows, err := r.q.Query(ctx, `SELECT `+storeColumns+` FROM "Store" s ORDER BY s.name, s.id`)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Store
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(storeDest(&s)...); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
