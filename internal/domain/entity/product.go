package entity

import "time"

// Product producto del catálogo; pertenece a exactamente una categoría.
type Product struct {
	ID          string
	ExternalID  int
	Code        string
	Name        string
	NameEnglish string
	Unit        *string
	CategoryID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
