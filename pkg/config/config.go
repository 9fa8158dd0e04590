package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Orígenes que se agregan automáticamente cuando APP_ENV=development (Vite y preview del dashboard).
var devOrigins = []string{"http://localhost:8080", "http://localhost:5173"}

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	HTTP      HTTPConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Stats     StatsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	LogLevel    string
	DocsEnabled bool // expone Swagger UI en /docs
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CORSConfig orígenes que reciben Access-Control-Allow-Origin.
type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig límite de ventana fija por cliente y ruta.
type RateLimitConfig struct {
	Window      time.Duration
	MaxRequests int
	Store       string // memory | redis
}

// RedisConfig conexión usada cuando RateLimit.Store es "redis".
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CacheConfig política de Cache-Control para respuestas exitosas.
type CacheConfig struct {
	SMaxAgeSeconds int // stale-while-revalidate = 2 × SMaxAgeSeconds
}

// StatsConfig parámetros de las agregaciones de precios.
type StatsConfig struct {
	// ScrapeWindow agrupa los precios de una misma corrida del scraper: max(scrapedAt) - ScrapeWindow.
	ScrapeWindow time.Duration
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DATABASE_URL, HTTP_PORT, RATE_LIMIT_MAX, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	env := getString(v, "APP_ENV", "development")

	cfg := &Config{
		App: AppConfig{
			Env:         env,
			Name:        getString(v, "APP_NAME", "pricewatch-api"),
			LogLevel:    getString(v, "LOG_LEVEL", "info"),
			DocsEnabled: getBool(v, "DOCS_ENABLED", false),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "pricewatch"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
		CORS: CORSConfig{
			AllowedOrigins: getList(v, "CORS_ALLOWED_ORIGINS", []string{
				"https://pricewatchdog.cy",
				"https://www.pricewatchdog.cy",
			}),
		},
		RateLimit: RateLimitConfig{
			Window:      getDuration(v, "RATE_LIMIT_WINDOW", time.Minute),
			MaxRequests: getInt(v, "RATE_LIMIT_MAX", 100),
			Store:       strings.ToLower(getString(v, "RATE_LIMIT_STORE", "memory")),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Cache: CacheConfig{
			SMaxAgeSeconds: getInt(v, "CACHE_SMAXAGE_SECONDS", 1800),
		},
		Stats: StatsConfig{
			ScrapeWindow: getDuration(v, "SCRAPE_WINDOW", time.Hour),
		},
	}

	if env == "development" {
		cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, devOrigins...)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW debe ser positivo")
	}
	if c.RateLimit.MaxRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX debe ser positivo")
	}
	if c.RateLimit.Store != "memory" && c.RateLimit.Store != "redis" {
		return fmt.Errorf("RATE_LIMIT_STORE inválido: %q", c.RateLimit.Store)
	}
	if c.Stats.ScrapeWindow <= 0 {
		return fmt.Errorf("SCRAPE_WINDOW debe ser positivo")
	}
	if c.Cache.SMaxAgeSeconds < 0 {
		return fmt.Errorf("CACHE_SMAXAGE_SECONDS no puede ser negativo")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

// getDuration acepta "90s", "1h" o un número entero de segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}

// getList separa por comas e ignora entradas vacías.
func getList(v *viper.Viper, key string, def []string) []string {
	if !v.IsSet(key) {
		return append([]string(nil), def...)
	}
	var out []string
	for _, s := range strings.Split(v.GetString(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
