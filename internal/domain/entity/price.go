package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Price observación de precio de un producto en una tienda. Inmutable: el historial solo crece.
type Price struct {
	ID        string
	ProductID string
	StoreID   string
	Price     decimal.Decimal
	ScrapedAt time.Time
}
