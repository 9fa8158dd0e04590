package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/pricewatch-api/internal/application/usecase"
	"github.com/jhoicas/pricewatch-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pricewatch-api/internal/interfaces/http"
	"github.com/jhoicas/pricewatch-api/pkg/config"
	"github.com/jhoicas/pricewatch-api/pkg/logger"
	"github.com/jhoicas/pricewatch-api/pkg/metrics"
	"github.com/jhoicas/pricewatch-api/pkg/ratelimit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	priceRepo := postgres.NewPriceRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)

	catalogUC := usecase.NewCatalogUseCase(categoryRepo, productRepo, storeRepo)
	productUC := usecase.NewProductUseCase(productRepo, priceRepo)
	statsUC := usecase.NewStatsUseCase(categoryRepo, productRepo, statsRepo, cfg.Stats.ScrapeWindow)

	// Con RATE_LIMIT_STORE=redis las réplicas comparten los contadores.
	var limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter()
	if cfg.RateLimit.Store == "redis" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no responde; el limitador dejará pasar las peticiones")
		}
		cancel()
		limiter = ratelimit.NewRedisLimiter(rdb)
	}

	rec := metrics.New("pricewatch", metrics.WithRuntimeCollectors())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})

	// Swagger UI: http://localhost:<port>/docs
	if cfg.App.DocsEnabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "PriceWatch API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName: cfg.App.Name,
		CatalogUC:   catalogUC,
		ProductUC:   productUC,
		StatsUC:     statsUC,
		Limiter:     limiter,
		Limit: ratelimit.Limit{
			Window:      cfg.RateLimit.Window,
			MaxRequests: cfg.RateLimit.MaxRequests,
		},
		CORSOrigins: cfg.CORS.AllowedOrigins,
		Cache:       httpRouter.CachePolicy{SMaxAge: cfg.Cache.SMaxAgeSeconds},
		Metrics:     rec,
		Logger:      log,
		Health:      pool,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
