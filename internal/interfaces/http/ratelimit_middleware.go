package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pricewatch-api/pkg/logger"
	"github.com/jhoicas/pricewatch-api/pkg/metrics"
	"github.com/jhoicas/pricewatch-api/pkg/ratelimit"
)

// Prefijos de clave del limitador, uno por grupo de rutas.
const (
	RouteStats         = "stats"
	RouteCategories    = "categories"
	RouteCategoryStats = "category-stats"
	RouteProducts      = "products"
	RoutePrices        = "prices"
	RouteProductStats  = "product-stats"
	RouteStores        = "stores"
)

// RateLimiter construye middlewares de ventana fija por ruta y cliente.
type RateLimiter struct {
	limiter ratelimit.Limiter
	limit   ratelimit.Limit
	log     *logger.Logger
	metrics *metrics.Recorder
}

// NewRateLimiter log y rec pueden ser nil.
func NewRateLimiter(limiter ratelimit.Limiter, limit ratelimit.Limit, log *logger.Logger, rec *metrics.Recorder) *RateLimiter {
	if log == nil {
		log = logger.Nop()
	}
	if limit.Window <= 0 {
		limit.Window = ratelimit.DefaultWindow
	}
	if limit.MaxRequests <= 0 {
		limit.MaxRequests = ratelimit.DefaultMaxRequests
	}
	return &RateLimiter{limiter: limiter, limit: limit, log: log, metrics: rec}
}

// For middleware con clave "<route>:<clientId>". Si el backend falla la petición sigue.
func (rl *RateLimiter) For(route string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := route + ":" + ClientID(c)
		res, err := rl.limiter.Check(c.Context(), key, rl.limit)
		if err != nil {
			rl.log.Warn().Err(err).Str("key", key).Msg("rate limiter no disponible")
			if rl.metrics != nil {
				rl.metrics.LimiterError()
			}
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(rl.limit.MaxRequests))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

		if !res.Allowed {
			retry := int(time.Until(res.ResetAt).Round(time.Second) / time.Second)
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(max(retry, 1)))
			if rl.metrics != nil {
				rl.metrics.RateLimited(route)
			}
			return TooManyRequests(c)
		}
		return c.Next()
	}
}
