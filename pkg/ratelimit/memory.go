package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

const shardCount = 32

type window struct {
	count int
	start time.Time
}

type shard struct {
	mu      sync.Mutex
	windows map[string]*window
}

var _ Limiter = (*MemoryLimiter)(nil)

// MemoryLimiter contadores en memoria del proceso, repartidos en shards con su propio mutex.
// No hay expiración de claves: el mapa se limpia solo al reiniciar el proceso.
type MemoryLimiter struct {
	shards [shardCount]*shard
	now    func() time.Time
}

// MemoryOption ajusta el MemoryLimiter.
type MemoryOption func(*MemoryLimiter)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) MemoryOption {
	return func(l *MemoryLimiter) { l.now = now }
}

// NewMemoryLimiter construye el limitador en memoria.
func NewMemoryLimiter(opts ...MemoryOption) *MemoryLimiter {
	l := &MemoryLimiter{now: time.Now}
	for i := range l.shards {
		l.shards[i] = &shard{windows: make(map[string]*window)}
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Check incrementa el contador de key y devuelve si la petición entra en el límite.
func (l *MemoryLimiter) Check(_ context.Context, key string, limit Limit) (Result, error) {
	limit = limit.normalized()
	s := l.shards[xxhash.Sum64String(key)%shardCount]
	now := l.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok {
		w = &window{start: now}
		s.windows[key] = w
	}
	if now.Sub(w.start) >= limit.Window {
		w.count = 0
		w.start = now
	}
	w.count++

	return newResult(w.count, limit, w.start), nil
}

// Len número de claves registradas.
func (l *MemoryLimiter) Len() int {
	n := 0
	for _, s := range l.shards {
		s.mu.Lock()
		n += len(s.windows)
		s.mu.Unlock()
	}
	return n
}
