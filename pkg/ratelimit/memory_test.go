package ratelimit_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pricewatch-api/pkg/ratelimit"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func TestMemoryLimiter_PermiteBajoElLimite(t *testing.T) {
	l := ratelimit.NewMemoryLimiter()
	res, err := l.Check(context.Background(), "test:allow", ratelimit.Limit{Window: time.Minute, MaxRequests: 5})
	require.NoError(t, err)

	assert.True(t, res.Allowed)
	assert.Equal(t, 4, res.Remaining)
}

func TestMemoryLimiter_BloqueaAlAlcanzarElLimite(t *testing.T) {
	l := ratelimit.NewMemoryLimiter()
	limit := ratelimit.Limit{Window: time.Minute, MaxRequests: 3}

	for i := 0; i < 3; i++ {
		res, err := l.Check(context.Background(), "k", limit)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "petición %d debe pasar", i+1)
	}

	res, err := l.Check(context.Background(), "k", limit)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
}

func TestMemoryLimiter_DecrementaRemaining(t *testing.T) {
	l := ratelimit.NewMemoryLimiter()
	limit := ratelimit.Limit{Window: time.Minute, MaxRequests: 5}

	for _, want := range []int{4, 3, 2} {
		res, _ := l.Check(context.Background(), "test:remaining", limit)
		assert.Equal(t, want, res.Remaining)
	}
}

func TestMemoryLimiter_ReiniciaAlVencerLaVentana(t *testing.T) {
	clock := newClock()
	l := ratelimit.NewMemoryLimiter(ratelimit.WithClock(clock.Now))
	limit := ratelimit.Limit{Window: time.Second, MaxRequests: 2}

	l.Check(context.Background(), "test:reset", limit)
	l.Check(context.Background(), "test:reset", limit)
	res, _ := l.Check(context.Background(), "test:reset", limit)
	require.False(t, res.Allowed)

	clock.Advance(1001 * time.Millisecond)

	res, _ = l.Check(context.Background(), "test:reset", limit)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)
	assert.Equal(t, clock.Now().Add(time.Second), res.ResetAt)
}

func TestMemoryLimiter_ClavesIndependientes(t *testing.T) {
	l := ratelimit.NewMemoryLimiter()
	limit := ratelimit.Limit{Window: time.Minute, MaxRequests: 1}

	l.Check(context.Background(), "key-a", limit)
	a, _ := l.Check(context.Background(), "key-a", limit)
	b, _ := l.Check(context.Background(), "key-b", limit)

	assert.False(t, a.Allowed)
	assert.True(t, b.Allowed)
	assert.Equal(t, 2, l.Len())
}

func TestMemoryLimiter_UsaValoresPorDefecto(t *testing.T) {
	l := ratelimit.NewMemoryLimiter()
	res, err := l.Check(context.Background(), "test:defaults", ratelimit.Limit{})
	require.NoError(t, err)

	assert.True(t, res.Allowed)
	assert.Equal(t, 99, res.Remaining)
}

func TestMemoryLimiter_ResetAtDentroDeLaVentana(t *testing.T) {
	clock := newClock()
	l := ratelimit.NewMemoryLimiter(ratelimit.WithClock(clock.Now))
	start := clock.Now()

	res, _ := l.Check(context.Background(), "test:resetAt", ratelimit.Limit{Window: 5 * time.Second, MaxRequests: 10})
	clock.Advance(2 * time.Second)
	res2, _ := l.Check(context.Background(), "test:resetAt", ratelimit.Limit{Window: 5 * time.Second, MaxRequests: 10})

	assert.Equal(t, start.Add(5*time.Second), res.ResetAt)
	assert.Equal(t, res.ResetAt, res2.ResetAt, "la ventana no se mueve con cada petición")
}

// Con peticiones concurrentes sobre la misma clave no se pierden incrementos.
func TestMemoryLimiter_ConcurrenciaNoSubcuenta(t *testing.T) {
	l := ratelimit.NewMemoryLimiter()
	limit := ratelimit.Limit{Window: time.Hour, MaxRequests: 50}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, _ := l.Check(context.Background(), "shared", limit)
			if res.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}

func TestMemoryLimiter_MuchasClaves(t *testing.T) {
	l := ratelimit.NewMemoryLimiter()
	for i := 0; i < 100; i++ {
		_, err := l.Check(context.Background(), fmt.Sprintf("products:10.0.0.%d", i), ratelimit.DefaultLimit())
		require.NoError(t, err)
	}
	assert.Equal(t, 100, l.Len())
}
