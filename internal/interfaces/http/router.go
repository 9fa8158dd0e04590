package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/pricewatch-api/internal/application/usecase"
	"github.com/jhoicas/pricewatch-api/pkg/logger"
	"github.com/jhoicas/pricewatch-api/pkg/metrics"
	"github.com/jhoicas/pricewatch-api/pkg/ratelimit"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName string
	CatalogUC   *usecase.CatalogUseCase
	ProductUC   *usecase.ProductUseCase
	StatsUC     *usecase.StatsUseCase
	Limiter     ratelimit.Limiter
	Limit       ratelimit.Limit
	CORSOrigins []string
	Cache       CachePolicy
	Metrics     *metrics.Recorder
	Logger      *logger.Logger
	Health      Pinger // opcional
}

// Router registra middlewares y rutas. El app debe crearse con ErrorHandler(deps.Logger).
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	rec := deps.Metrics
	if rec == nil {
		rec = metrics.New("pricewatch")
	}
	if deps.Limiter == nil {
		deps.Limiter = ratelimit.NewMemoryLimiter()
	}

	// RequestLogger envuelve a recover para ver el 500 de los panics.
	app.Use(RequestLogger(log.Component("http"), rec))
	app.Use(recover.New())

	app.Get("/health", Health(deps.ServiceName, deps.Health))
	app.Get("/metrics", adaptor.HTTPHandler(rec.Handler()))

	api := app.Group("/api", CORS(deps.CORSOrigins))
	api.Get("/metrics", NewMetricsHandler(rec, log).Snapshot)

	rl := NewRateLimiter(deps.Limiter, deps.Limit, log.Component("ratelimit"), rec)
	stats := NewStatsHandler(deps.StatsUC, deps.Cache, log)
	categories := NewCategoryHandler(deps.CatalogUC, deps.Cache, log)
	products := NewProductHandler(deps.ProductUC, deps.Cache, log)

	api.Get("/stats", rl.For(RouteStats), stats.Global)

	api.Get("/categories", rl.For(RouteCategories), categories.List)
	api.Get("/categories/:id", rl.For(RouteCategories), categories.GetByID)
	api.Get("/categories/:id/stats", rl.For(RouteCategoryStats), stats.Category)

	api.Get("/products", rl.For(RouteProducts), products.List)
	api.Get("/products/:id", rl.For(RouteProducts), products.GetByID)
	api.Get("/products/:id/prices", rl.For(RoutePrices), products.Prices)
	api.Get("/products/:id/stats", rl.For(RouteProductStats), stats.Product)

	api.Get("/stores", rl.For(RouteStores), categories.Stores)
}
