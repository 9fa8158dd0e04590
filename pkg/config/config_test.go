package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, values map[string]any) (*Config, error) {
	t.Helper()
	v := viper.New()
	for k, val := range values {
		v.Set(k, val)
	}
	return fromViper(v)
}

func TestDefaults(t *testing.T) {
	cfg, err := load(t, map[string]any{"APP_ENV": "production"})
	require.NoError(t, err)

	assert.Equal(t, "pricewatch-api", cfg.App.Name)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.False(t, cfg.App.DocsEnabled)
	assert.Equal(t, "0.0.0.0:3000", cfg.HTTP.Addr())
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 100, cfg.RateLimit.MaxRequests)
	assert.Equal(t, "memory", cfg.RateLimit.Store)
	assert.Equal(t, 1800, cfg.Cache.SMaxAgeSeconds)
	assert.Equal(t, time.Hour, cfg.Stats.ScrapeWindow)
	assert.Equal(t, 10, cfg.DB.MaxConns)
	assert.Equal(t, []string{"https://pricewatchdog.cy", "https://www.pricewatchdog.cy"}, cfg.CORS.AllowedOrigins)
}

func TestDevelopmentAddsLocalOrigins(t *testing.T) {
	cfg, err := load(t, map[string]any{"CORS_ALLOWED_ORIGINS": "https://a.example, ,https://b.example"})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, []string{
		"https://a.example", "https://b.example",
		"http://localhost:8080", "http://localhost:5173",
	}, cfg.CORS.AllowedOrigins)
}

func TestOverrides(t *testing.T) {
	cfg, err := load(t, map[string]any{
		"APP_ENV":               "production",
		"HTTP_PORT":             "8080",
		"RATE_LIMIT_MAX":        " 5 ",
		"RATE_LIMIT_WINDOW":     "90",
		"RATE_LIMIT_STORE":      "REDIS",
		"SCRAPE_WINDOW":         "2h",
		"CACHE_SMAXAGE_SECONDS": 0,
		"DOCS_ENABLED":          "true",
	})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 5, cfg.RateLimit.MaxRequests)
	assert.Equal(t, 90*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, "redis", cfg.RateLimit.Store)
	assert.Equal(t, 2*time.Hour, cfg.Stats.ScrapeWindow)
	assert.Zero(t, cfg.Cache.SMaxAgeSeconds)
	assert.True(t, cfg.App.DocsEnabled)
}

func TestInvalidValues(t *testing.T) {
	cases := map[string]map[string]any{
		"límite cero":        {"RATE_LIMIT_MAX": "0"},
		"ventana negativa":   {"RATE_LIMIT_WINDOW": "-1s"},
		"backend":            {"RATE_LIMIT_STORE": "memcached"},
		"scrape window cero": {"SCRAPE_WINDOW": "0"},
		"s-maxage negativo":  {"CACHE_SMAXAGE_SECONDS": "-1"},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := load(t, values)
			assert.Error(t, err)
		})
	}
}

func TestConnectionString_DatabaseURLOCampos(t *testing.T) {
	db := DBConfig{Host: "db", Port: 5432, User: "reader", Password: "p@ss/word", DBName: "prices", SSLMode: "require"}
	assert.Equal(t, "postgres://reader:p%40ss%2Fword@db:5432/prices?sslmode=require", db.ConnectionString())

	db.DatabaseURL = "postgres://u@h/d"
	assert.Equal(t, "postgres://u@h/d", db.ConnectionString())
}
