package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveGeneration(3 * time.Millisecond)
	m.Generated.WithLabelValues("dirt", "inline").Inc()
	m.CacheHits.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		"mcgen_generator_runtime_seconds_count 1",
		`mcgen_generator_generated_total{background="dirt",output="inline"} 1`,
		"mcgen_cache_hits_total 1",
		"mcgen_cache_misses_total 0",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestNewIsIndependent(t *testing.T) {
	a, b := New(), New()
	a.CacheMisses.Inc()
	if a.Registry == b.Registry {
		t.Fatal("registries are shared")
	}
}
