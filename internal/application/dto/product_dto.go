package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductResponse producto del catálogo.
type ProductResponse struct {
	ID          string    `json:"id"`
	ExternalID  int       `json:"externalId"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	NameEnglish string    `json:"nameEnglish"`
	Unit        *string   `json:"unit"`
	CategoryID  string    `json:"categoryId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductListItem elemento de GET /products.
type ProductListItem struct {
	ProductResponse
	Category CategoryResponse `json:"category"`
}

// ProductDetailResponse GET /products/:id con categoría y los últimos precios.
type ProductDetailResponse struct {
	ProductResponse
	Category CategoryResponse         `json:"category"`
	Prices   []PriceWithStoreResponse `json:"prices"`
}

// PriceResponse observación de precio. Price se serializa como string decimal ("1.99").
type PriceResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	StoreID   string          `json:"storeId"`
	Price     decimal.Decimal `json:"price"`
	ScrapedAt time.Time       `json:"scrapedAt"`
}

// PriceWithStoreResponse precio con su tienda.
type PriceWithStoreResponse struct {
	PriceResponse
	Store StoreResponse `json:"store"`
}
