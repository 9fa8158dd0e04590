package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pricewatch-api/internal/application/query"
	"github.com/jhoicas/pricewatch-api/internal/domain"
	"github.com/jhoicas/pricewatch-api/internal/infrastructure/memstore"
)

func productList(t *testing.T, v query.Values) query.ProductList {
	t.Helper()
	q, err := query.NewProductList(v)
	require.NoError(t, err)
	return q
}

func priceHistory(t *testing.T, v query.Values) query.PriceHistory {
	t.Helper()
	q, err := query.NewPriceHistory(v)
	require.NoError(t, err)
	return q
}

func TestProductList_OrdenPorNombre(t *testing.T) {
	uc := newProducts(memstore.Seeded(latest))

	page, err := uc.List(context.Background(), productList(t, query.Values{}))
	require.NoError(t, err)
	var names []string
	for _, p := range page.Items {
		names = append(names, p.NameEnglish)
	}
	assert.Equal(t, []string{"Butter", "Fresh Milk 1L", "Yogurt", "Halloumi", "Bread"}, names)
	assert.False(t, page.Meta.HasNext)
	assert.Nil(t, page.Meta.Cursor)
	assert.Equal(t, memstore.CategoryDairy, page.Items[0].Category.ID)
}

func TestProductList_RecorridoCompletoSinSolapamiento(t *testing.T) {
	uc := newProducts(memstore.Seeded(latest))
	ctx := context.Background()

	full, err := uc.List(ctx, productList(t, query.Values{}))
	require.NoError(t, err)

	var seen []string
	v := query.Values{"limit": "2"}
	for pages := 0; ; pages++ {
		require.Less(t, pages, 10, "la paginación no termina")
		page, err := uc.List(ctx, productList(t, v))
		require.NoError(t, err)
		assert.LessOrEqual(t, len(page.Items), 2)
		for _, p := range page.Items {
			seen = append(seen, p.ID)
		}
		if !page.Meta.HasNext {
			break
		}
		require.NotNil(t, page.Meta.Cursor)
		v = query.Values{"limit": "2", "cursor": *page.Meta.Cursor}
	}

	var want []string
	for _, p := range full.Items {
		want = append(want, p.ID)
	}
	assert.Equal(t, want, seen)
}

func TestProductList_BusquedaSinDistinguirMayusculas(t *testing.T) {
	uc := newProducts(memstore.Seeded(latest))

	page, err := uc.List(context.Background(), productList(t, query.Values{"search": "milk"}))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, memstore.ProductMilk, page.Items[0].ID)

	page, err = uc.List(context.Background(), productList(t, query.Values{"search": "ΧΑΛΛ"}))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, memstore.ProductHalloumi, page.Items[0].ID)
}

func TestProductList_PorCategoria(t *testing.T) {
	uc := newProducts(memstore.Seeded(latest))

	page, err := uc.List(context.Background(), productList(t, query.Values{"categoryId": memstore.CategoryDairy}))
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
	for _, p := range page.Items {
		assert.Equal(t, memstore.CategoryDairy, p.CategoryID)
	}
}

func TestProductList_CursorDesconocidoDevuelvePaginaVacia(t *testing.T) {
	uc := newProducts(memstore.Seeded(latest))

	page, err := uc.List(context.Background(), productList(t, query.Values{"cursor": "00000000-0000-4000-8000-000000000000"}))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.False(t, page.Meta.HasNext)
}

func TestProductGetByID_ConCategoriaYUltimosPrecios(t *testing.T) {
	uc := newProducts(memstore.Seeded(latest))

	out, err := uc.GetByID(context.Background(), memstore.ProductMilk)
	require.NoError(t, err)
	assert.Equal(t, memstore.CategoryMilk, out.Category.ID)
	require.Len(t, out.Prices, 4)
	assert.Equal(t, "1.5", out.Prices[0].Price.String())
	assert.Equal(t, latest, out.Prices[0].ScrapedAt)
	assert.Equal(t, "Alphamega", *out.Prices[0].Store.Chain)
	for i := 1; i < len(out.Prices); i++ {
		assert.False(t, out.Prices[i].ScrapedAt.After(out.Prices[i-1].ScrapedAt), "más reciente primero")
	}
}

func TestProductGetByID_Inexistente(t *testing.T) {
	uc := newProducts(memstore.Seeded(latest))

	_, err := uc.GetByID(context.Background(), "00000000-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPriceHistory_Paginado(t *testing.T) {
	uc := newProducts(memstore.Seeded(latest))
	ctx := context.Background()

	first, err := uc.PriceHistory(ctx, memstore.ProductMilk, priceHistory(t, query.Values{"limit": "2"}))
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	assert.True(t, first.Meta.HasNext)
	require.NotNil(t, first.Meta.Cursor)
	assert.Equal(t, first.Items[1].ID, *first.Meta.Cursor)

	second, err := uc.PriceHistory(ctx, memstore.ProductMilk, priceHistory(t, query.Values{"limit": "2", "cursor": *first.Meta.Cursor}))
	require.NoError(t, err)
	require.Len(t, second.Items, 2)
	assert.False(t, second.Meta.HasNext)
	assert.True(t, second.Items[0].ScrapedAt.Before(first.Items[1].ScrapedAt))
}

func TestPriceHistory_Filtros(t *testing.T) {
	uc := newProducts(memstore.Seeded(latest))
	ctx := context.Background()

	byStore, err := uc.PriceHistory(ctx, memstore.ProductMilk, priceHistory(t, query.Values{"storeId": memstore.StoreAlphamega}))
	require.NoError(t, err)
	assert.Len(t, byStore.Items, 2)

	from := latest.Add(-time.Hour).Format("2006-01-02T15:04:05Z07:00")
	recent, err := uc.PriceHistory(ctx, memstore.ProductMilk, priceHistory(t, query.Values{"from": from}))
	require.NoError(t, err)
	assert.Len(t, recent.Items, 3)

	old, err := uc.PriceHistory(ctx, memstore.ProductMilk, priceHistory(t, query.Values{"to": from}))
	require.NoError(t, err)
	assert.Len(t, old.Items, 1)
}

func TestPriceHistory_ProductoInexistente(t *testing.T) {
	uc := newProducts(memstore.Seeded(latest))

	_, err := uc.PriceHistory(context.Background(), "00000000-0000-4000-8000-000000000000", query.PriceHistory{Limit: 20})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
