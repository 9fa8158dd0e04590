package dto

// Envelope cuerpo de todas las respuestas de /api: exactamente uno de Data o Error va poblado.
type Envelope struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
	Meta  *Meta     `json:"meta"`
}

// APIError error devuelto al cliente. Fields solo en errores de validación.
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Meta metadatos de paginación por cursor.
type Meta struct {
	Cursor  *string `json:"cursor,omitempty"`
	HasNext bool    `json:"hasNext"`
	Total   *int64  `json:"total,omitempty"`
}

// Page resultado paginado listo para el envelope.
type Page[T any] struct {
	Items []T
	Meta  Meta
}

// Paginate recorta rows (pedidas con limit+1) a limit. Si sobra una fila hay página siguiente y el
// cursor es el id de la última fila devuelta.
func Paginate[T any](rows []T, limit int, id func(T) string) Page[T] {
	if rows == nil {
		rows = []T{}
	}
	if limit <= 0 || len(rows) <= limit {
		return Page[T]{Items: rows, Meta: Meta{HasNext: false}}
	}
	rows = rows[:limit]
	cursor := id(rows[len(rows)-1])
	return Page[T]{Items: rows, Meta: Meta{Cursor: &cursor, HasNext: true}}
}
