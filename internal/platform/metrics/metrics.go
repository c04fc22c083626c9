// Package metrics exposes Prometheus counters for the batch mutator and the
// HTTP surface. Each Recorder owns its registry so tests and multiple
// servers in one process never collide on registration.
package metrics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the services report to
type Recorder interface {
	ItemProcessed(kind, status string)
	RunCompleted(tab string, d time.Duration)
	HistoryOp(op string, n int)
	CacheHit()
	CacheMiss()
	ObserveRequest(route string, status int, d time.Duration)
	Handler() http.Handler
}

// Config toggles metrics
type Config struct {
	Enabled   bool
	Namespace string
}

// New returns a Prometheus recorder, or Noop when disabled
func New(cfg Config) Recorder {
	if !cfg.Enabled {
		return Noop{}
	}
	ns := cfg.Namespace
	if ns == "" {
		ns = "bulkdate"
	}
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Prom{
		reg: reg,
		items: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "items_total",
			Help:      "Items handled by the redistributor by kind and outcome",
		}, []string{"kind", "status"}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "runs_total",
			Help:      "Completed redistribution runs by tab",
		}, []string{"tab"}),
		runDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "run_duration_seconds",
			Help:      "Redistribution run duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tab"}),
		history: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "history_ops_total",
			Help:      "History entries touched by operation",
		}, []string{"op"}),
		cacheHits: f.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "cache_hits_total",
			Help:      "Entity cache hits",
		}),
		cacheMisses: f.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "cache_misses_total",
			Help:      "Entity cache misses",
		}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "requests_total",
			Help:      "HTTP requests by route and status class",
		}, []string{"route", "status"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// Prom records into a private registry
type Prom struct {
	reg             *prometheus.Registry
	items           *prometheus.CounterVec
	runs            *prometheus.CounterVec
	runDuration     *prometheus.HistogramVec
	history         *prometheus.CounterVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func (m *Prom) ItemProcessed(kind, status string) { m.items.WithLabelValues(kind, status).Inc() }

func (m *Prom) RunCompleted(tab string, d time.Duration) {
	m.runs.WithLabelValues(tab).Inc()
	m.runDuration.WithLabelValues(tab).Observe(d.Seconds())
}

func (m *Prom) HistoryOp(op string, n int) {
	if n <= 0 {
		return
	}
	m.history.WithLabelValues(op).Add(float64(n))
}

func (m *Prom) CacheHit()  { m.cacheHits.Inc() }
func (m *Prom) CacheMiss() { m.cacheMisses.Inc() }

func (m *Prom) ObserveRequest(route string, status int, d time.Duration) {
	m.requests.WithLabelValues(route, statusClass(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

// Handler serves this recorder's registry in the exposition format
func (m *Prom) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Registry is exposed for gatherers in tests
func (m *Prom) Registry() *prometheus.Registry { return m.reg }

func statusClass(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// Noop discards everything; its Handler answers 404
type Noop struct{}

func (Noop) ItemProcessed(string, string)              {}
func (Noop) RunCompleted(string, time.Duration)        {}
func (Noop) HistoryOp(string, int)                     {}
func (Noop) CacheHit()                                 {}
func (Noop) CacheMiss()                                {}
func (Noop) ObserveRequest(string, int, time.Duration) {}
func (Noop) Handler() http.Handler                     { return http.NotFoundHandler() }

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware observes every request under its chi route pattern so label
// cardinality stays bounded by the route table
func Middleware(rec Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil {
				if p := rc.RoutePattern(); p != "" {
					route = p
				}
			}
			rec.ObserveRequest(route, sw.status, time.Since(start))
		})
	}
}
