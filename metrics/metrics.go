// Package metrics provides Prometheus metrics for mcgen.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace          = "mcgen"
	subsystemGenerator = "generator"
	subsystemCache     = "cache"
)

// Metrics owns a registry and the collectors registered on it. Each App
// gets its own so tests can build several side by side.
type Metrics struct {
	Registry *prometheus.Registry

	GenerationRuntime prometheus.Histogram
	Generated         *prometheus.CounterVec
	CacheHits         prometheus.Counter
	CacheMisses       prometheus.Counter
}

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		GenerationRuntime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystemGenerator,
			Name:      "runtime_seconds",
			Help:      "How long it took to generate an achievement image in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 1.4, 30),
		}),
		Generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemGenerator,
			Name:      "generated_total",
			Help:      "Achievement images served, by background and output type.",
		}, []string{"background", "output"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemCache,
			Name:      "hits_total",
			Help:      "Image cache hits.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemCache,
			Name:      "misses_total",
			Help:      "Image cache misses.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.GenerationRuntime,
		m.Generated,
		m.CacheHits,
		m.CacheMisses,
	)
	return m
}

// ObserveGeneration records one successful render.
func (m *Metrics) ObserveGeneration(d time.Duration) {
	m.GenerationRuntime.Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
