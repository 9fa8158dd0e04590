// Package query define los parámetros aceptados por cada endpoint.
//
// Cada tipo se construye con un constructor puro que devuelve el valor tipado o FieldErrors.
// Los parámetros desconocidos se ignoran y los opcionales ausentes toman su valor por defecto.
package query

import "time"

// Valores de paginación.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Pagination cursor (id de la última fila vista) y tamaño de página.
type Pagination struct {
	Cursor *string `query:"cursor" validate:"omitnil,uuid"`
	Limit  int     `query:"limit" validate:"min=1,max=100"`
}

// NewPagination valida cursor y limit.
func NewPagination(v Values) (Pagination, error) {
	fields := FieldErrors{}
	p := Pagination{
		Cursor: v.optional("cursor"),
		Limit:  v.integer("limit", DefaultLimit, fields),
	}
	if _, bad := fields["limit"]; bad {
		p.Limit = DefaultLimit
	}
	check(p, fields)
	return p, fields.orNil()
}

// CategoryList parámetros de GET /categories.
type CategoryList struct {
	ParentID        *string `query:"parentId" validate:"omitnil,uuid"`
	IncludeProducts bool    `query:"includeProducts"`
}

// NewCategoryList valida parentId e includeProducts.
func NewCategoryList(v Values) (CategoryList, error) {
	fields := FieldErrors{}
	q := CategoryList{
		ParentID:        v.optional("parentId"),
		IncludeProducts: v.boolean("includeProducts", false),
	}
	check(q, fields)
	return q, fields.orNil()
}

// ProductList parámetros de GET /products.
type ProductList struct {
	Cursor     *string `query:"cursor" validate:"omitnil,uuid"`
	Limit      int     `query:"limit" validate:"min=1,max=100"`
	CategoryID *string `query:"categoryId" validate:"omitnil,uuid"`
	Search     *string `query:"search" validate:"omitnil,utf8,min=1,max=100"`
}

// NewProductList valida paginación, categoría y búsqueda.
func NewProductList(v Values) (ProductList, error) {
	fields := FieldErrors{}
	q := ProductList{
		Cursor:     v.optional("cursor"),
		Limit:      v.integer("limit", DefaultLimit, fields),
		CategoryID: v.optional("categoryId"),
		Search:     v.optional("search"),
	}
	if _, bad := fields["limit"]; bad {
		q.Limit = DefaultLimit
	}
	check(q, fields)
	return q, fields.orNil()
}

// Page devuelve la paginación de la consulta.
func (q ProductList) Page() Pagination {
	return Pagination{Cursor: q.Cursor, Limit: q.Limit}
}

// PriceHistory parámetros de GET /products/:id/prices.
type PriceHistory struct {
	Cursor  *string    `query:"cursor" validate:"omitnil,uuid"`
	Limit   int        `query:"limit" validate:"min=1,max=100"`
	StoreID *string    `query:"storeId" validate:"omitnil,uuid"`
	From    *time.Time `query:"from"`
	To      *time.Time `query:"to"`
}

// NewPriceHistory valida paginación, tienda y rango de fechas.
func NewPriceHistory(v Values) (PriceHistory, error) {
	fields := FieldErrors{}
	q := PriceHistory{
		Cursor:  v.optional("cursor"),
		Limit:   v.integer("limit", DefaultLimit, fields),
		StoreID: v.optional("storeId"),
		From:    v.date("from", fields),
		To:      v.date("to", fields),
	}
	if _, bad := fields["limit"]; bad {
		q.Limit = DefaultLimit
	}
	check(q, fields)
	return q, fields.orNil()
}

// Page devuelve la paginación de la consulta.
func (q PriceHistory) Page() Pagination {
	return Pagination{Cursor: q.Cursor, Limit: q.Limit}
}
