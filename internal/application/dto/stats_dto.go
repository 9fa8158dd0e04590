package dto

import "time"

// GlobalStatsResponse GET /stats.
type GlobalStatsResponse struct {
	Counts        CountsResponse     `json:"counts"`
	LastScrapedAt *time.Time         `json:"lastScrapedAt"`
	PriceRange    PriceRangeResponse `json:"priceRange"`
}

// CountsResponse totales del catálogo.
type CountsResponse struct {
	Categories   int64 `json:"categories"`
	Products     int64 `json:"products"`
	Stores       int64 `json:"stores"`
	PriceRecords int64 `json:"priceRecords"`
}

// PriceRangeResponse rango histórico como strings decimales; null si no hay precios.
type PriceRangeResponse struct {
	Min *string `json:"min"`
	Max *string `json:"max"`
	Avg *string `json:"avg"`
}

// ProductStatsResponse GET /products/:id/stats.
type ProductStatsResponse struct {
	Current    *CurrentStats   `json:"current"`
	ByStore    []StoreStats    `json:"byStore"`
	ByDistrict []DistrictStats `json:"byDistrict"`
}

// CurrentStats agregados de la última captura.
type CurrentStats struct {
	Min        *float64  `json:"min"`
	Max        *float64  `json:"max"`
	Avg        *float64  `json:"avg"`
	StoreCount int       `json:"storeCount"`
	ScrapedAt  time.Time `json:"scrapedAt"`
}

// StoreStats precios de un producto en una tienda. Current es el último precio observado.
type StoreStats struct {
	StoreID    string  `json:"storeId"`
	StoreName  string  `json:"storeName"`
	StoreChain *string `json:"storeChain"`
	Current    float64 `json:"current"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Avg        float64 `json:"avg"`
	PriceCount int     `json:"priceCount"`
}

// DistrictStats precios de un producto en un distrito.
type DistrictStats struct {
	District   string  `json:"district"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Avg        float64 `json:"avg"`
	StoreCount int     `json:"storeCount"`
}

// CategoryStatsResponse GET /categories/:id/stats.
type CategoryStatsResponse struct {
	ProductCount int               `json:"productCount"`
	ScrapedAt    *time.Time        `json:"scrapedAt"`
	Cheapest     []CheapestProduct `json:"cheapest"`
}

// CheapestProduct precio mínimo de un producto en la última captura de la categoría.
type CheapestProduct struct {
	ProductID   string  `json:"productId"`
	Name        string  `json:"name"`
	NameEnglish string  `json:"nameEnglish"`
	MinPrice    float64 `json:"minPrice"`
}

// MetricsResponse GET /api/metrics, plano para que lo ingiera Telegraf.
type MetricsResponse struct {
	MemoryHeapUsed  uint64 `json:"memory_heap_used"`
	MemoryHeapTotal uint64 `json:"memory_heap_total"`
	MemorySys       uint64 `json:"memory_sys"`
	Goroutines      int    `json:"goroutines"`
	UptimeSeconds   int64  `json:"uptime_seconds"`
	GoVersion       string `json:"go_version"`
	RequestsTotal   uint64 `json:"requests_total"`
	Requests2xx     uint64 `json:"requests_2xx"`
	Requests3xx     uint64 `json:"requests_3xx"`
	Requests4xx     uint64 `json:"requests_4xx"`
	Requests5xx     uint64 `json:"requests_5xx"`
	Timestamp       int64  `json:"timestamp"`
}
