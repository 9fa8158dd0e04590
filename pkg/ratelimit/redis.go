package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// El primer INCR de la ventana fija el TTL; PTTL indica cuánto falta para el reinicio.
var fixedWindowScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

var _ Limiter = (*RedisLimiter)(nil)

// RedisLimiter ventana fija compartida entre réplicas de la API.
type RedisLimiter struct {
	rdb redis.Scripter
	now func() time.Time
}

// NewRedisLimiter construye el limitador sobre un cliente Redis existente.
func NewRedisLimiter(rdb redis.Scripter) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, now: time.Now}
}

// Check ejecuta el script de ventana fija de forma atómica en Redis.
func (l *RedisLimiter) Check(ctx context.Context, key string, limit Limit) (Result, error) {
	limit = limit.normalized()

	vals, err := fixedWindowScript.Run(ctx, l.rdb, []string{redisKeyPrefix + key}, limit.Window.Milliseconds()).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("ratelimit redis: %w", err)
	}
	if len(vals) != 2 {
		return Result{}, fmt.Errorf("ratelimit redis: respuesta inesperada %v", vals)
	}

	count, ttl := int(vals[0]), time.Duration(vals[1])*time.Millisecond
	windowStart := l.now().Add(ttl - limit.Window)
	return newResult(count, limit, windowStart), nil
}
