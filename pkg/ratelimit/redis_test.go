package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pricewatch-api/pkg/ratelimit"
)

func newRedisLimiter(t *testing.T) (*ratelimit.RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return ratelimit.NewRedisLimiter(rdb), mr
}

func TestRedisLimiter_BloqueaYReinicia(t *testing.T) {
	l, mr := newRedisLimiter(t)
	ctx := context.Background()
	limit := ratelimit.Limit{Window: time.Minute, MaxRequests: 3}

	for i := 0; i < 3; i++ {
		res, err := l.Check(ctx, "k", limit)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res, err := l.Check(ctx, "k", limit)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)

	mr.FastForward(time.Minute + time.Millisecond)

	res, err = l.Check(ctx, "k", limit)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 2, res.Remaining)
}

func TestRedisLimiter_ClavesIndependientes(t *testing.T) {
	l, mr := newRedisLimiter(t)
	ctx := context.Background()
	limit := ratelimit.Limit{Window: time.Minute, MaxRequests: 1}

	a1, _ := l.Check(ctx, "stats:1.1.1.1", limit)
	a2, _ := l.Check(ctx, "stats:1.1.1.1", limit)
	b1, _ := l.Check(ctx, "stats:2.2.2.2", limit)

	assert.True(t, a1.Allowed)
	assert.False(t, a2.Allowed)
	assert.True(t, b1.Allowed)
	assert.True(t, mr.Exists("ratelimit:stats:1.1.1.1"))
}

func TestRedisLimiter_ResetAtEnElFuturo(t *testing.T) {
	l, _ := newRedisLimiter(t)
	before := time.Now()

	res, err := l.Check(context.Background(), "reset", ratelimit.Limit{Window: 5 * time.Second, MaxRequests: 10})
	require.NoError(t, err)

	assert.True(t, res.ResetAt.After(before))
	assert.True(t, !res.ResetAt.After(time.Now().Add(5*time.Second)))
}

func TestRedisLimiter_ErrorDeConexion(t *testing.T) {
	l, mr := newRedisLimiter(t)
	mr.Close()

	_, err := l.Check(context.Background(), "k", ratelimit.DefaultLimit())
	assert.Error(t, err)
}
