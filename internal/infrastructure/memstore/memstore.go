// Package memstore implementa los repositorios de lectura en memoria con la misma semántica de
// orden, cursor y ventana que el adaptador de PostgreSQL. Se usa en tests de casos de uso y HTTP.
package memstore

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pricewatch-api/internal/domain/entity"
	"github.com/jhoicas/pricewatch-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.StoreRepository    = (*StoreRepo)(nil)
	_ repository.PriceRepository    = (*PriceRepo)(nil)
	_ repository.StatsRepository    = (*StatsRepo)(nil)
)

// Store datos compartidos por los repositorios en memoria.
type Store struct {
	mu         sync.RWMutex
	categories []entity.Category
	products   []entity.Product
	stores     []entity.Store
	prices     []entity.Price
	fail       error
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{}
}

// AddCategory agrega categorías.
func (s *Store) AddCategory(c ...entity.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, c...)
}

// AddProduct agrega productos.
func (s *Store) AddProduct(p ...entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p...)
}

// AddStore agrega tiendas.
func (s *Store) AddStore(st ...entity.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stores = append(s.stores, st...)
}

// AddPrice agrega observaciones de precio.
func (s *Store) AddPrice(p ...entity.Price) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices = append(s.prices, p...)
}

// FailWith hace que toda consulta posterior devuelva err (nil restablece).
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

// Categories repositorio de categorías sobre este almacén.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

// Products repositorio de productos sobre este almacén.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Stores repositorio de tiendas sobre este almacén.
func (s *Store) Stores() *StoreRepo { return &StoreRepo{s: s} }

// Prices repositorio de precios sobre este almacén.
func (s *Store) Prices() *PriceRepo { return &PriceRepo{s: s} }

// Stats repositorio de agregados sobre este almacén.
func (s *Store) Stats() *StatsRepo { return &StatsRepo{s: s} }

// read toma el lock de lectura y devuelve el error inyectado o el del contexto.
func (s *Store) read(ctx context.Context) (func(), error) {
	s.mu.RLock()
	if s.fail != nil {
		s.mu.RUnlock()
		return nil, s.fail
	}
	if err := ctx.Err(); err != nil {
		s.mu.RUnlock()
		return nil, err
	}
	return s.mu.RUnlock, nil
}

func (s *Store) category(id string) *entity.Category {
	for i := range s.categories {
		if s.categories[i].ID == id {
			c := s.categories[i]
			return &c
		}
	}
	return nil
}

func (s *Store) product(id string) *entity.Product {
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p
		}
	}
	return nil
}

func (s *Store) store(id string) entity.Store {
	for _, st := range s.stores {
		if st.ID == id {
			return st
		}
	}
	return entity.Store{ID: id}
}

func set(ids []string) map[string]struct{} {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}

func byNameThenID(a, b string, aid, bid string) int {
	return cmp.Or(cmp.Compare(a, b), cmp.Compare(aid, bid))
}

// CategoryRepo implementa repository.CategoryRepository.
type CategoryRepo struct{ s *Store }

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	done, err := r.s.read(ctx)
	if err != nil {
		return nil, err
	}
	defer done()
	return r.s.category(id), nil
}

func (r *CategoryRepo) ListByParent(ctx context.Context, parentID *string) ([]*entity.Category, error) {
	done, err := r.s.read(ctx)
	if err != nil {
		return nil, err
	}
	defer done()
	var out []*entity.Category
	for i := range r.s.categories {
		c := r.s.categories[i]
		switch {
		case parentID == nil && c.ParentID == nil,
			parentID != nil && c.ParentID != nil && *c.ParentID == *parentID:
			out = append(out, &c)
		}
	}
	sortCategories(out)
	return out, nil
}

func (r *CategoryRepo) ListChildren(ctx context.Context, parentIDs []string) ([]*entity.Category, error) {
	done, err := r.s.read(ctx)
	if err != nil {
		return nil, err
	}
	defer done()
	parents := set(parentIDs)
	var out []*entity.Category
	for i := range r.s.categories {
		c := r.s.categories[i]
		if c.ParentID == nil {
			continue
		}
		if _, ok := parents[*c.ParentID]; ok {
			out = append(out, &c)
		}
	}
	sortCategories(out)
	return out, nil
}

func sortCategories(list []*entity.Category) {
	slices.SortFunc(list, func(a, b *entity.Category) int { return byNameThenID(a.Name, b.Name, a.ID, b.ID) })
}

// ProductRepo implementa repository.ProductRepository.
type ProductRepo struct{ s *Store }

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*repository.ProductWithCategory, error) {
	done, err := r.s.read(ctx)
	if err != nil {
		return nil, err
	}
	defer done()
	p := r.s.product(id)
	if p == nil {
		return nil, nil
	}
	out := &repository.ProductWithCategory{Product: *p}
	if c := r.s.category(p.CategoryID); c != nil {
		out.Category = *c
	}
	return out, nil
}

func (r *ProductRepo) Exists(ctx context.Context, id string) (bool, error) {
	done, err := r.s.read(ctx)
	if err != nil {
		return false, err
	}
	defer done()
	return r.s.product(id) != nil, nil
}

func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]repository.ProductWithCategory, error) {
	done, err := r.s.read(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	var after *entity.Product
	if f.Cursor != nil {
		if after = r.s.product(*f.Cursor); after == nil {
			return []repository.ProductWithCategory{}, nil
		}
	}
	var needle string
	if f.Search != nil {
		needle = strings.ToLower(*f.Search)
	}

	var matched []entity.Product
	for _, p := range r.s.products {
		if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
			continue
		}
		if f.Search != nil &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.NameEnglish), needle) {
			continue
		}
		if after != nil && byNameThenID(p.Name, after.Name, p.ID, after.ID) <= 0 {
			continue
		}
		matched = append(matched, p)
	}
	slices.SortFunc(matched, func(a, b entity.Product) int { return byNameThenID(a.Name, b.Name, a.ID, b.ID) })
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}

	out := make([]repository.ProductWithCategory, 0, len(matched))
	for _, p := range matched {
		row := repository.ProductWithCategory{Product: p}
		if c := r.s.category(p.CategoryID); c != nil {
			row.Category = *c
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *ProductRepo) ListByCategories(ctx context.Context, categoryIDs []string, limit int) ([]*entity.Product, error) {
	done, err := r.s.read(ctx)
	if err != nil {
		return nil, err
	}
	defer done()
	ids := set(categoryIDs)
	var out []*entity.Product
	for i := range r.s.products {
		p := r.s.products[i]
		if _, ok := ids[p.CategoryID]; ok {
			out = append(out, &p)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Product) int { return byNameThenID(a.Name, b.Name, a.ID, b.ID) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ProductRepo) IDsByCategories(ctx context.Context, categoryIDs []string) ([]string, error) {
	list, err := r.ListByCategories(ctx, categoryIDs, 0)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.ID)
	}
	return out, nil
}

// StoreRepo implementa repository.StoreRepository.
type StoreRepo struct{ s *Store }

func (r *StoreRepo) List(ctx context.Context) ([]*entity.Store, error) {
	done, err := r.s.read(ctx)
	if err != nil {
		return nil, err
	}
	defer done()
	out := make([]*entity.Store, 0, len(r.s.stores))
	for i := range r.s.stores {
		st := r.s.stores[i]
		out = append(out, &st)
	}
	slices.SortFunc(out, func(a, b *entity.Store) int { return byNameThenID(a.Name, b.Name, a.ID, b.ID) })
	return out, nil
}

// PriceRepo implementa repository.PriceRepository.
type PriceRepo struct{ s *Store }

// newestFirst orden (scrapedAt, id) descendente.
func newestFirst(a, b entity.Price) int {
	return cmp.Or(b.ScrapedAt.Compare(a.ScrapedAt), cmp.Compare(b.ID, a.ID))
}

func (r *PriceRepo) History(ctx context.Context, f repository.PriceFilter) ([]repository.PriceWithStore, error) {
	done, err := r.s.read(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	var after *entity.Price
	if f.Cursor != nil {
		for i := range r.s.prices {
			if r.s.prices[i].ID == *f.Cursor {
				p := r.s.prices[i]
				after = &p
				break
			}
		}
		if after == nil {
			return []repository.PriceWithStore{}, nil
		}
	}

	var matched []entity.Price
	for _, p := range r.s.prices {
		if p.ProductID != f.ProductID {
			continue
		}
		if f.StoreID != nil && p.StoreID != *f.StoreID {
			continue
		}
		if f.From != nil && p.ScrapedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && p.ScrapedAt.After(*f.To) {
			continue
		}
		if after != nil && newestFirst(p, *after) <= 0 {
			continue
		}
		matched = append(matched, p)
	}
	slices.SortFunc(matched, newestFirst)
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return r.withStores(matched), nil
}

func (r *PriceRepo) Latest(ctx context.Context, productID string, n int) ([]repository.PriceWithStore, error) {
	return r.History(ctx, repository.PriceFilter{ProductID: productID, Limit: n})
}

func (r *PriceRepo) withStores(list []entity.Price) []repository.PriceWithStore {
	out := make([]repository.PriceWithStore, 0, len(list))
	for _, p := range list {
		out = append(out, repository.PriceWithStore{Price: p, Store: r.s.store(p.StoreID)})
	}
	return out
}

// StatsRepo implementa repository.StatsRepository.
type StatsRepo struct{ s *Store }

func (r *StatsRepo) count(ctx context.Context, n func() int) (int64, error) {
	done, err := r.s.read(ctx)
	if err != nil {
		return 0, err
	}
	defer done()
	return int64(n()), nil
}

func (r *StatsRepo) CountCategories(ctx context.Context) (int64, error) {
	return r.count(ctx, func() int { return len(r.s.categories) })
}

func (r *StatsRepo) CountProducts(ctx context.Context) (int64, error) {
	return r.count(ctx, func() int { return len(r.s.products) })
}

func (r *StatsRepo) CountStores(ctx context.Context) (int64, error) {
	return r.count(ctx, func() int { return len(r.s.stores) })
}

func (r *StatsRepo) CountPrices(ctx context.Context) (int64, error) {
	return r.count(ctx, func() int { return len(r.s.prices) })
}

func (r *StatsRepo) LatestScrapedAt(ctx context.Context, productIDs []string) (*time.Time, error) {
	done, err := r.s.read(ctx)
	if err != nil {
		return nil, err
	}
	defer done()
	ids := set(productIDs)
	var latest *time.Time
	for _, p := range r.s.prices {
		if productIDs != nil {
			if _, ok := ids[p.ProductID]; !ok {
				continue
			}
		}
		if latest == nil || p.ScrapedAt.After(*latest) {
			t := p.ScrapedAt
			latest = &t
		}
	}
	return latest, nil
}

func (r *StatsRepo) PriceRange(ctx context.Context) (repository.PriceRange, error) {
	done, err := r.s.read(ctx)
	if err != nil {
		return repository.PriceRange{}, err
	}
	defer done()
	var out repository.PriceRange
	if len(r.s.prices) == 0 {
		return out, nil
	}
	sum := decimal.Zero
	lo, hi := r.s.prices[0].Price, r.s.prices[0].Price
	for _, p := range r.s.prices {
		sum = sum.Add(p.Price)
		lo = decimal.Min(lo, p.Price)
		hi = decimal.Max(hi, p.Price)
	}
	out.Min = decimal.NewNullDecimal(lo)
	out.Max = decimal.NewNullDecimal(hi)
	out.Avg = decimal.NewNullDecimal(sum.Div(decimal.NewFromInt(int64(len(r.s.prices)))))
	return out, nil
}

// windowed precios del producto con scrapedAt >= since.
func (r *StatsRepo) windowed(productID string, since time.Time) []entity.Price {
	var out []entity.Price
	for _, p := range r.s.prices {
		if p.ProductID == productID && !p.ScrapedAt.Before(since) {
			out = append(out, p)
		}
	}
	return out
}

type agg struct {
	min, max, sum float64
	n             int
}

func (a *agg) add(v float64) {
	if a.n == 0 || v < a.min {
		a.min = v
	}
	if a.n == 0 || v > a.max {
		a.max = v
	}
	a.sum += v
	a.n++
}

func (a *agg) avg() float64 { return a.sum / float64(a.n) }

func (r *StatsRepo) CurrentSummary(ctx context.Context, productID string, since time.Time) (repository.CurrentSummary, error) {
	done, err := r.s.read(ctx)
	if err != nil {
		return repository.CurrentSummary{}, err
	}
	defer done()
	var a agg
	for _, p := range r.windowed(productID, since) {
		a.add(p.Price.InexactFloat64())
	}
	if a.n == 0 {
		return repository.CurrentSummary{}, nil
	}
	avg := a.avg()
	return repository.CurrentSummary{Min: &a.min, Max: &a.max, Avg: &avg, Count: a.n}, nil
}

func (r *StatsRepo) StoreBreakdown(ctx context.Context, productID string, since time.Time) ([]repository.StoreStatsResult, error) {
	done, err := r.s.read(ctx)
	if err != nil {
		return nil, err
	}
	defer done()
	rows := r.windowed(productID, since)
	slices.SortFunc(rows, newestFirst)

	var order []string
	aggs := map[string]*agg{}
	latest := map[string]float64{}
	for _, p := range rows {
		a, ok := aggs[p.StoreID]
		if !ok {
			a = &agg{}
			aggs[p.StoreID] = a
			latest[p.StoreID] = p.Price.InexactFloat64()
			order = append(order, p.StoreID)
		}
		a.add(p.Price.InexactFloat64())
	}

	out := make([]repository.StoreStatsResult, 0, len(order))
	for _, id := range order {
		st := r.s.store(id)
		a := aggs[id]
		out = append(out, repository.StoreStatsResult{
			StoreID:     id,
			StoreName:   st.DisplayName(),
			StoreChain:  st.Chain,
			LatestPrice: latest[id],
			MinPrice:    a.min,
			MaxPrice:    a.max,
			AvgPrice:    a.avg(),
			PriceCount:  a.n,
		})
	}
	slices.SortFunc(out, func(a, b repository.StoreStatsResult) int {
		return cmp.Or(cmp.Compare(a.LatestPrice, b.LatestPrice), cmp.Compare(a.StoreID, b.StoreID))
	})
	return out, nil
}

func (r *StatsRepo) DistrictBreakdown(ctx context.Context, productID string, since time.Time) ([]repository.DistrictStatsResult, error) {
	done, err := r.s.read(ctx)
	if err != nil {
		return nil, err
	}
	defer done()
	aggs := map[string]*agg{}
	storesBy := map[string]map[string]struct{}{}
	for _, p := range r.windowed(productID, since) {
		st := r.s.store(p.StoreID)
		if st.District == nil {
			continue
		}
		d := *st.District
		if aggs[d] == nil {
			aggs[d] = &agg{}
			storesBy[d] = map[string]struct{}{}
		}
		aggs[d].add(p.Price.InexactFloat64())
		storesBy[d][st.ID] = struct{}{}
	}
	out := make([]repository.DistrictStatsResult, 0, len(aggs))
	for d, a := range aggs {
		out = append(out, repository.DistrictStatsResult{
			District:   d,
			MinPrice:   a.min,
			MaxPrice:   a.max,
			AvgPrice:   a.avg(),
			StoreCount: len(storesBy[d]),
		})
	}
	slices.SortFunc(out, func(a, b repository.DistrictStatsResult) int {
		return cmp.Or(cmp.Compare(a.AvgPrice, b.AvgPrice), cmp.Compare(a.District, b.District))
	})
	return out, nil
}

func (r *StatsRepo) CheapestProducts(ctx context.Context, productIDs []string, since time.Time, limit int) ([]repository.CheapestProductResult, error) {
	done, err := r.s.read(ctx)
	if err != nil {
		return nil, err
	}
	defer done()
	ids := set(productIDs)
	mins := map[string]float64{}
	for _, p := range r.s.prices {
		if _, ok := ids[p.ProductID]; !ok || p.ScrapedAt.Before(since) {
			continue
		}
		v := p.Price.InexactFloat64()
		if cur, ok := mins[p.ProductID]; !ok || v < cur {
			mins[p.ProductID] = v
		}
	}
	out := make([]repository.CheapestProductResult, 0, len(mins))
	for id, v := range mins {
		row := repository.CheapestProductResult{ProductID: id, MinPrice: v}
		if p := r.s.product(id); p != nil {
			row.Name, row.NameEnglish = p.Name, p.NameEnglish
		}
		out = append(out, row)
	}
	slices.SortFunc(out, func(a, b repository.CheapestProductResult) int {
		return cmp.Or(cmp.Compare(a.MinPrice, b.MinPrice), cmp.Compare(a.ProductID, b.ProductID))
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Snapshot copia de todas las filas, en orden de inserción.
func (s *Store) Snapshot() ([]entity.Category, []entity.Product, []entity.Store, []entity.Price) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories), slices.Clone(s.products), slices.Clone(s.stores), slices.Clone(s.prices)
}
