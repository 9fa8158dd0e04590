package entity

import "time"

// Store supermercado o punto de venta del que se obtienen precios.
type Store struct {
	ID          string
	ExternalID  int
	Name        string
	NameEnglish *string
	Chain       *string
	District    *string
	Location    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DisplayName nombre en inglés si existe, si no el original.
func (s *Store) DisplayName() string {
	if s.NameEnglish != nil && *s.NameEnglish != "" {
		return *s.NameEnglish
	}
	return s.Name
}
