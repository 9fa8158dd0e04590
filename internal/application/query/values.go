package query

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Values parámetros crudos del query string (fiber: c.Queries()).
type Values map[string]string

func (v Values) optional(key string) *string {
	s, ok := v[key]
	if !ok {
		return nil
	}
	return &s
}

// integer convierte como Number(): "" -> 0, "abc" -> error, "3.5" -> error de entero.
func (v Values) integer(key string, def int, fields FieldErrors) int {
	raw, ok := v[key]
	if !ok {
		return def
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) {
		fields.add(key, "Expected number, received nan")
		return def
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		fields.add(key, "Expected integer, received float")
		return def
	}
	// Fuera de rango igual lo rechaza min/max; se acota para no desbordar int.
	f = math.Max(math.Min(f, math.MaxInt32), math.MinInt32)
	return int(f)
}

// boolean sigue la regla de verdad de JavaScript para strings: cualquier valor no vacío es true.
func (v Values) boolean(key string, def bool) bool {
	raw, ok := v[key]
	if !ok {
		return def
	}
	return raw != ""
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// date acepta RFC3339, fecha-hora sin zona (UTC) o fecha YYYY-MM-DD (medianoche UTC).
func (v Values) date(key string, fields FieldErrors) *time.Time {
	raw, ok := v[key]
	if !ok {
		return nil
	}
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t
		}
	}
	fields.add(key, "Invalid date")
	return nil
}
