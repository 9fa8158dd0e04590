package memstore

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pricewatch-api/internal/domain/entity"
)

// Identificadores del catálogo de ejemplo que carga Seeded.
const (
	CategoryDairy  = "00000000-0000-4000-8000-0000000000c1"
	CategoryMilk   = "00000000-0000-4000-8000-0000000000c2" // hija de Dairy
	CategoryBakery = "00000000-0000-4000-8000-0000000000c3"
	CategoryEmpty  = "00000000-0000-4000-8000-0000000000c4" // sin productos

	ProductMilk     = "00000000-0000-4000-8000-0000000000a1"
	ProductHalloumi = "00000000-0000-4000-8000-0000000000a2"
	ProductButter   = "00000000-0000-4000-8000-0000000000a3"
	ProductBread    = "00000000-0000-4000-8000-0000000000a4"
	ProductYogurt   = "00000000-0000-4000-8000-0000000000a5" // sin precios

	StoreAlphamega   = "00000000-0000-4000-8000-0000000000b1"
	StoreSklavenitis = "00000000-0000-4000-8000-0000000000b2"
	StoreLidl        = "00000000-0000-4000-8000-0000000000b3" // sin distrito
)

// Seeded devuelve un almacén con un catálogo pequeño. La última corrida del scraper termina en
// latest; hay además una corrida dos días antes.
func Seeded(latest time.Time) *Store {
	s := New()
	created := latest.Add(-30 * 24 * time.Hour)
	str := func(v string) *string { return &v }
	dairy := CategoryDairy

	s.AddCategory(
		entity.Category{ID: CategoryDairy, ExternalID: 1, Code: "01", Name: "Dairy", NameEnglish: "Dairy", CreatedAt: created, UpdatedAt: created},
		entity.Category{ID: CategoryMilk, ExternalID: 2, Code: "0101", Name: "Milk", NameEnglish: "Milk", ParentID: &dairy, CreatedAt: created, UpdatedAt: created},
		entity.Category{ID: CategoryBakery, ExternalID: 3, Code: "02", Name: "Bakery", NameEnglish: "Bakery", CreatedAt: created, UpdatedAt: created},
		entity.Category{ID: CategoryEmpty, ExternalID: 4, Code: "03", Name: "Empty", NameEnglish: "Empty", CreatedAt: created, UpdatedAt: created},
	)
	s.AddProduct(
		entity.Product{ID: ProductMilk, ExternalID: 11, Code: "P11", Name: "Γάλα Φρέσκο 1L", NameEnglish: "Fresh Milk 1L", Unit: str("1L"), CategoryID: CategoryMilk, CreatedAt: created, UpdatedAt: created},
		entity.Product{ID: ProductHalloumi, ExternalID: 12, Code: "P12", Name: "Χαλλούμι", NameEnglish: "Halloumi", Unit: str("225g"), CategoryID: CategoryDairy, CreatedAt: created, UpdatedAt: created},
		entity.Product{ID: ProductButter, ExternalID: 13, Code: "P13", Name: "Βούτυρο", NameEnglish: "Butter", CategoryID: CategoryDairy, CreatedAt: created, UpdatedAt: created},
		entity.Product{ID: ProductBread, ExternalID: 14, Code: "P14", Name: "Ψωμί", NameEnglish: "Bread", CategoryID: CategoryBakery, CreatedAt: created, UpdatedAt: created},
		entity.Product{ID: ProductYogurt, ExternalID: 15, Code: "P15", Name: "Γιαούρτι", NameEnglish: "Yogurt", CategoryID: CategoryDairy, CreatedAt: created, UpdatedAt: created},
	)
	s.AddStore(
		entity.Store{ID: StoreAlphamega, ExternalID: 21, Name: "Alphamega Strovolos", NameEnglish: str("Alphamega Strovolos"), Chain: str("Alphamega"), District: str("Nicosia"), CreatedAt: created, UpdatedAt: created},
		entity.Store{ID: StoreSklavenitis, ExternalID: 22, Name: "Σκλαβενίτης Λεμεσός", NameEnglish: str("Sklavenitis Limassol"), Chain: str("Sklavenitis"), District: str("Limassol"), CreatedAt: created, UpdatedAt: created},
		entity.Store{ID: StoreLidl, ExternalID: 23, Name: "Lidl", CreatedAt: created, UpdatedAt: created},
	)

	old := latest.Add(-48 * time.Hour)
	rows := []struct {
		product, store, price string
		at                    time.Time
	}{
		{ProductMilk, StoreAlphamega, "1.50", latest},
		{ProductMilk, StoreSklavenitis, "1.40", latest.Add(-10 * time.Minute)},
		{ProductMilk, StoreLidl, "1.60", latest.Add(-30 * time.Minute)},
		{ProductMilk, StoreAlphamega, "1.70", old},
		{ProductHalloumi, StoreAlphamega, "4.20", latest},
		{ProductHalloumi, StoreSklavenitis, "3.90", latest},
		{ProductButter, StoreAlphamega, "2.10", latest.Add(-20 * time.Minute)},
		{ProductBread, StoreSklavenitis, "0.90", old},
	}
	for i, r := range rows {
		s.AddPrice(entity.Price{
			ID:        fmt.Sprintf("00000000-0000-4000-8000-%012x", 0xe000+i),
			ProductID: r.product,
			StoreID:   r.store,
			Price:     decimal.RequireFromString(r.price),
			ScrapedAt: r.at,
		})
	}
	return s
}
