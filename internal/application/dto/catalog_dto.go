package dto

import "time"

// CategoryResponse categoría del catálogo.
type CategoryResponse struct {
	ID          string    `json:"id"`
	ExternalID  int       `json:"externalId"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	NameEnglish string    `json:"nameEnglish"`
	ParentID    *string   `json:"parentId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryListItem elemento de GET /categories: incluye hijas y, si se pidió, productos.
type CategoryListItem struct {
	CategoryResponse
	Children []CategoryResponse `json:"children"`
	// Products es nil salvo con includeProducts; entonces es [] aunque no haya productos.
	Products *[]ProductResponse `json:"products,omitempty"`
}

// CategoryDetailResponse GET /categories/:id con padre, hijas y hasta 20 productos.
type CategoryDetailResponse struct {
	CategoryResponse
	Parent   *CategoryResponse  `json:"parent"`
	Children []CategoryResponse `json:"children"`
	Products []ProductResponse  `json:"products"`
}

// StoreResponse tienda.
type StoreResponse struct {
	ID          string    `json:"id"`
	ExternalID  int       `json:"externalId"`
	Name        string    `json:"name"`
	NameEnglish *string   `json:"nameEnglish"`
	Chain       *string   `json:"chain"`
	District    *string   `json:"district"`
	Location    *string   `json:"location"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
