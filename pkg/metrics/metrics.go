// Package metrics contadores Prometheus de la API y su resumen en JSON.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

const requestsTotalName = "http_requests_total"

// Recorder métricas HTTP sobre un registro propio (no el global, para poder crear varios en tests).
type Recorder struct {
	namespace   string
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	rateLimited *prometheus.CounterVec
	limiterErrs prometheus.Counter
	started     time.Time
	now         func() time.Time
}

// Option configura el Recorder.
type Option func(*Recorder)

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// WithRuntimeCollectors agrega las métricas de Go y del proceso.
func WithRuntimeCollectors() Option {
	return func(r *Recorder) {
		r.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
}

// New crea y registra las métricas bajo namespace.
func New(namespace string, opts ...Option) *Recorder {
	r := &Recorder{
		namespace: namespace,
		registry:  prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      requestsTotalName,
			Help:      "Total HTTP requests by route and status class",
		}, []string{"route", "class"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		}, []string{"route"}),
		limiterErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limiter_errors_total",
			Help:      "Rate limiter backend failures (requests let through)",
		}),
		now: time.Now,
	}
	r.registry.MustRegister(r.requests, r.duration, r.rateLimited, r.limiterErrs)
	for _, opt := range opts {
		opt(r)
	}
	r.started = r.now()
	return r
}

// ObserveRequest cuenta una respuesta y su duración.
func (r *Recorder) ObserveRequest(route string, status int, d time.Duration) {
	r.requests.WithLabelValues(route, StatusClass(status)).Inc()
	r.duration.WithLabelValues(route).Observe(d.Seconds())
}

// RateLimited cuenta un rechazo del limitador.
func (r *Recorder) RateLimited(route string) {
	r.rateLimited.WithLabelValues(route).Inc()
}

// LimiterError cuenta una falla del backend del limitador.
func (r *Recorder) LimiterError() {
	r.limiterErrs.Inc()
}

// Handler exposición en formato Prometheus.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry registro subyacente.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// StatusClass "2xx", "4xx", etc.
func StatusClass(status int) string {
	return strconv.Itoa(status/100) + "xx"
}

// Snapshot resumen de peticiones desde el arranque.
type Snapshot struct {
	UptimeSeconds int64
	RequestsTotal uint64
	ByClass       map[string]uint64
}

// Snapshot suma los contadores de peticiones por clase de status.
func (r *Recorder) Snapshot() (Snapshot, error) {
	out := Snapshot{
		UptimeSeconds: int64(r.now().Sub(r.started) / time.Second),
		ByClass:       map[string]uint64{},
	}
	families, err := r.registry.Gather()
	if err != nil {
		return out, err
	}
	name := prometheus.BuildFQName(r.namespace, "", requestsTotalName)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			n := uint64(m.GetCounter().GetValue())
			out.RequestsTotal += n
			out.ByClass[label(m, "class")] += n
		}
	}
	return out, nil
}

func label(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
