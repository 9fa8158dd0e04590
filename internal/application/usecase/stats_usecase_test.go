package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pricewatch-api/internal/domain"
	"github.com/jhoicas/pricewatch-api/internal/infrastructure/memstore"
)

func TestGlobalStats(t *testing.T) {
	uc := newStats(memstore.Seeded(latest), time.Hour)

	out, err := uc.Global(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 4, out.Counts.Categories)
	assert.EqualValues(t, 5, out.Counts.Products)
	assert.EqualValues(t, 3, out.Counts.Stores)
	assert.EqualValues(t, 8, out.Counts.PriceRecords)
	require.NotNil(t, out.LastScrapedAt)
	assert.Equal(t, latest, *out.LastScrapedAt)
	assert.Equal(t, "0.9", *out.PriceRange.Min)
	assert.Equal(t, "4.2", *out.PriceRange.Max)
	assert.Equal(t, "2.1625", *out.PriceRange.Avg)
}

func TestGlobalStats_SinDatos(t *testing.T) {
	uc := newStats(memstore.New(), time.Hour)

	out, err := uc.Global(context.Background())
	require.NoError(t, err)
	assert.Zero(t, out.Counts.PriceRecords)
	assert.Nil(t, out.LastScrapedAt)
	assert.Nil(t, out.PriceRange.Min)
	assert.Nil(t, out.PriceRange.Max)
	assert.Nil(t, out.PriceRange.Avg)
}

func TestGlobalStats_PropagaError(t *testing.T) {
	s := memstore.Seeded(latest)
	boom := errors.New("timeout")
	s.FailWith(boom)

	_, err := newStats(s, time.Hour).Global(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestProductStats_UltimaCaptura(t *testing.T) {
	uc := newStats(memstore.Seeded(latest), time.Hour)

	out, err := uc.ProductStats(context.Background(), memstore.ProductMilk)
	require.NoError(t, err)
	require.NotNil(t, out.Current)
	assert.InDelta(t, 1.40, *out.Current.Min, 1e-9)
	assert.InDelta(t, 1.60, *out.Current.Max, 1e-9)
	assert.InDelta(t, 1.50, *out.Current.Avg, 1e-9)
	assert.Equal(t, 3, out.Current.StoreCount)
	assert.Equal(t, latest, out.Current.ScrapedAt)

	require.Len(t, out.ByStore, 3)
	assert.Equal(t, memstore.StoreSklavenitis, out.ByStore[0].StoreID)
	assert.Equal(t, "Sklavenitis Limassol", out.ByStore[0].StoreName)
	assert.Equal(t, memstore.StoreAlphamega, out.ByStore[1].StoreID)
	assert.Equal(t, 1, out.ByStore[1].PriceCount, "la corrida anterior queda fuera de la ventana")
	assert.Equal(t, "Lidl", out.ByStore[2].StoreName)

	require.Len(t, out.ByDistrict, 2, "las tiendas sin distrito no cuentan")
	assert.Equal(t, "Limassol", out.ByDistrict[0].District)
	assert.Equal(t, "Nicosia", out.ByDistrict[1].District)
	assert.Equal(t, 1, out.ByDistrict[1].StoreCount)
}

func TestProductStats_VentanaConfigurable(t *testing.T) {
	uc := newStats(memstore.Seeded(latest), 72*time.Hour)

	out, err := uc.ProductStats(context.Background(), memstore.ProductMilk)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Current.StoreCount)
	assert.InDelta(t, 1.70, *out.Current.Max, 1e-9)
}

func TestProductStats_SinPrecios(t *testing.T) {
	uc := newStats(memstore.Seeded(latest), time.Hour)

	out, err := uc.ProductStats(context.Background(), memstore.ProductYogurt)
	require.NoError(t, err)
	assert.Nil(t, out.Current)
	assert.NotNil(t, out.ByStore)
	assert.Empty(t, out.ByStore)
	assert.NotNil(t, out.ByDistrict)
	assert.Empty(t, out.ByDistrict)
}

func TestProductStats_Inexistente(t *testing.T) {
	uc := newStats(memstore.Seeded(latest), time.Hour)

	_, err := uc.ProductStats(context.Background(), "00000000-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryStats_MasBaratosIncluyeSubcategorias(t *testing.T) {
	uc := newStats(memstore.Seeded(latest), time.Hour)

	out, err := uc.CategoryStats(context.Background(), memstore.CategoryDairy)
	require.NoError(t, err)
	assert.Equal(t, 4, out.ProductCount)
	require.NotNil(t, out.ScrapedAt)
	assert.Equal(t, latest, *out.ScrapedAt)

	require.Len(t, out.Cheapest, 3)
	assert.Equal(t, memstore.ProductMilk, out.Cheapest[0].ProductID)
	assert.Equal(t, "Fresh Milk 1L", out.Cheapest[0].NameEnglish)
	assert.InDelta(t, 1.40, out.Cheapest[0].MinPrice, 1e-9)
	assert.Equal(t, memstore.ProductButter, out.Cheapest[1].ProductID)
	assert.Equal(t, memstore.ProductHalloumi, out.Cheapest[2].ProductID)
	for i := 1; i < len(out.Cheapest); i++ {
		assert.LessOrEqual(t, out.Cheapest[i-1].MinPrice, out.Cheapest[i].MinPrice)
	}
}

func TestCategoryStats_VentanaPropiaDelConjunto(t *testing.T) {
	uc := newStats(memstore.Seeded(latest), time.Hour)

	out, err := uc.CategoryStats(context.Background(), memstore.CategoryBakery)
	require.NoError(t, err)
	assert.Equal(t, 1, out.ProductCount)
	require.NotNil(t, out.ScrapedAt)
	assert.Equal(t, latest.Add(-48*time.Hour), *out.ScrapedAt)
	require.Len(t, out.Cheapest, 1)
	assert.InDelta(t, 0.90, out.Cheapest[0].MinPrice, 1e-9)
}

func TestCategoryStats_SinProductos(t *testing.T) {
	uc := newStats(memstore.Seeded(latest), time.Hour)

	out, err := uc.CategoryStats(context.Background(), memstore.CategoryEmpty)
	require.NoError(t, err)
	assert.Zero(t, out.ProductCount)
	assert.Nil(t, out.ScrapedAt)
	assert.NotNil(t, out.Cheapest)
	assert.Empty(t, out.Cheapest)
}

func TestCategoryStats_Inexistente(t *testing.T) {
	uc := newStats(memstore.Seeded(latest), time.Hour)

	_, err := uc.CategoryStats(context.Background(), "00000000-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
