// Package ratelimit implementa el límite de peticiones por ventana fija.
//
// Cada clave (ruta + cliente) mantiene un contador y el inicio de su ventana; cuando la ventana
// vence el contador vuelve a cero. Hay dos backends: memoria del proceso y Redis (compartido entre
// réplicas).
package ratelimit

import (
	"context"
	"time"
)

// Valores por defecto: 100 peticiones por minuto.
const (
	DefaultWindow      = time.Minute
	DefaultMaxRequests = 100
)

// Limiter verifica y consume una petición de la clave indicada.
type Limiter interface {
	Check(ctx context.Context, key string, limit Limit) (Result, error)
}

// Limit regla de ventana fija.
type Limit struct {
	Window      time.Duration
	MaxRequests int
}

// DefaultLimit devuelve la regla 100 / 60s.
func DefaultLimit() Limit {
	return Limit{Window: DefaultWindow, MaxRequests: DefaultMaxRequests}
}

// normalized completa con valores por defecto los campos en cero.
func (l Limit) normalized() Limit {
	if l.Window <= 0 {
		l.Window = DefaultWindow
	}
	if l.MaxRequests <= 0 {
		l.MaxRequests = DefaultMaxRequests
	}
	return l
}

// Result resultado de una verificación.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

func newResult(count int, limit Limit, windowStart time.Time) Result {
	remaining := limit.MaxRequests - count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= limit.MaxRequests,
		Remaining: remaining,
		ResetAt:   windowStart.Add(limit.Window),
	}
}
