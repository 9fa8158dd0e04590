package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pricewatch-api/internal/application/usecase"
	"github.com/jhoicas/pricewatch-api/internal/infrastructure/memstore"
	apphttp "github.com/jhoicas/pricewatch-api/internal/interfaces/http"
	"github.com/jhoicas/pricewatch-api/pkg/logger"
	"github.com/jhoicas/pricewatch-api/pkg/metrics"
	"github.com/jhoicas/pricewatch-api/pkg/ratelimit"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const allowedOrigin = "https://pricewatchdog.cy"

var latest = time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC)

type testApp struct {
	app     *fiber.App
	store   *memstore.Store
	metrics *metrics.Recorder
}

type option func(*apphttp.RouterDeps)

func withLimit(n int) option {
	return func(d *apphttp.RouterDeps) { d.Limit = ratelimit.Limit{Window: time.Minute, MaxRequests: n} }
}

func withLimiter(l ratelimit.Limiter) option {
	return func(d *apphttp.RouterDeps) { d.Limiter = l }
}

func withCache(p apphttp.CachePolicy) option {
	return func(d *apphttp.RouterDeps) { d.Cache = p }
}

func withHealth(p apphttp.Pinger) option {
	return func(d *apphttp.RouterDeps) { d.Health = p }
}

// newTestApp arma la API completa sobre el catálogo de ejemplo en memoria.
func newTestApp(t *testing.T, opts ...option) *testApp {
	t.Helper()
	store := memstore.Seeded(latest)
	rec := metrics.New("pricewatch_test")
	log := logger.Nop()

	deps := apphttp.RouterDeps{
		ServiceName: "pricewatch-api",
		CatalogUC:   usecase.NewCatalogUseCase(store.Categories(), store.Products(), store.Stores()),
		ProductUC:   usecase.NewProductUseCase(store.Products(), store.Prices()),
		StatsUC:     usecase.NewStatsUseCase(store.Categories(), store.Products(), store.Stats(), time.Hour),
		Limiter:     ratelimit.NewMemoryLimiter(),
		Limit:       ratelimit.DefaultLimit(),
		CORSOrigins: []string{allowedOrigin},
		Cache:       apphttp.DefaultCachePolicy(),
		Metrics:     rec,
		Logger:      log,
	}
	for _, opt := range opts {
		opt(&deps)
	}

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	apphttp.Router(app, deps)
	return &testApp{app: app, store: store, metrics: rec}
}

// envelope forma del cuerpo de /api para decodificar en los tests.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
	Meta *struct {
		Cursor  *string `json:"cursor"`
		HasNext bool    `json:"hasNext"`
	} `json:"meta"`
}

// do ejecuta la petición; headers va en pares nombre, valor.
func (a *testApp) do(t *testing.T, method, target string, headers ...string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, body
}

func (a *testApp) get(t *testing.T, target string, headers ...string) (*http.Response, envelope) {
	t.Helper()
	resp, body := a.do(t, http.MethodGet, target, headers...)
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), "body: %s", body)
	return resp, env
}

// data decodifica env.Data en out.
func data(t *testing.T, env envelope, out any) {
	t.Helper()
	require.NotNil(t, env.Data)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

type failingLimiter struct{}

func (failingLimiter) Check(context.Context, string, ratelimit.Limit) (ratelimit.Result, error) {
	return ratelimit.Result{}, context.DeadlineExceeded
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }
