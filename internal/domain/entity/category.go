package entity

import "time"

// Category categoría de productos del catálogo oficial (dos niveles: raíz y subcategoría).
type Category struct {
	ID          string
	ExternalID  int
	Code        string
	Name        string
	NameEnglish string
	ParentID    *string // nil si es raíz
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsRoot indica si la categoría no tiene padre.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}
