package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CatalogCounts totales por tabla.
type CatalogCounts struct {
	Categories   int64
	Products     int64
	Stores       int64
	PriceRecords int64
}

// PriceRange min/max/avg sobre todo el historial; inválidos si no hay precios.
type PriceRange struct {
	Min decimal.NullDecimal
	Max decimal.NullDecimal
	Avg decimal.NullDecimal
}

// CurrentSummary agregados de la última captura de un producto.
type CurrentSummary struct {
	Min   *float64
	Max   *float64
	Avg   *float64
	Count int
}

// StoreStatsResult agregados por tienda dentro de la ventana.
type StoreStatsResult struct {
	StoreID     string
	StoreName   string // nameEnglish, o name si no hay traducción
	StoreChain  *string
	LatestPrice float64 // último precio observado en la tienda (ORDER BY scrapedAt DESC LIMIT 1)
	MinPrice    float64
	MaxPrice    float64
	AvgPrice    float64
	PriceCount  int
}

// DistrictStatsResult agregados por distrito dentro de la ventana.
type DistrictStatsResult struct {
	District   string
	MinPrice   float64
	MaxPrice   float64
	AvgPrice   float64
	StoreCount int
}

// CheapestProductResult precio mínimo de un producto dentro de la ventana.
type CheapestProductResult struct {
	ProductID   string
	Name        string
	NameEnglish string
	MinPrice    float64
}

// StatsRepository consultas agregadas de solo lectura sobre precios.
// Las implementaciones no modifican datos.
type StatsRepository interface {
	CountCategories(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	CountStores(ctx context.Context) (int64, error)
	CountPrices(ctx context.Context) (int64, error)

	// LatestScrapedAt max(scrapedAt) de los productos dados; con productIDs nil considera todo el
	// historial. Devuelve nil si no hay filas.
	LatestScrapedAt(ctx context.Context, productIDs []string) (*time.Time, error)

	PriceRange(ctx context.Context) (PriceRange, error)

	// CurrentSummary agregados del producto con scrapedAt >= since.
	CurrentSummary(ctx context.Context, productID string, since time.Time) (CurrentSummary, error)
	// StoreBreakdown agregados por tienda con scrapedAt >= since, ordenados por último precio.
	StoreBreakdown(ctx context.Context, productID string, since time.Time) ([]StoreStatsResult, error)
	// DistrictBreakdown agregados por distrito con scrapedAt >= since, ordenados por promedio.
	DistrictBreakdown(ctx context.Context, productID string, since time.Time) ([]DistrictStatsResult, error)
	// CheapestProducts mínimo por producto con scrapedAt >= since, ascendente, hasta limit filas.
	CheapestProducts(ctx context.Context, productIDs []string, since time.Time, limit int) ([]CheapestProductResult, error)
}
