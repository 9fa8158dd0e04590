package query

import (
	"sort"
	"strings"
)

// FieldErrors errores de validación por campo (ruta con puntos para campos anidados).
type FieldErrors map[string]string

// Error implementa error con los campos en orden estable.
func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "validación: " + strings.Join(parts, "; ")
}

// add conserva el primer mensaje de cada campo.
func (e FieldErrors) add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

func (e FieldErrors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
