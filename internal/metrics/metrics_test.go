package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRecorder(t *testing.T) {
	m, err := New(nil)
	require.NoError(t, err)

	m.Hit("memory")
	m.Hit("memory")
	m.Miss("memory")
	m.Invalidated("memory", 3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheHits.WithLabelValues("memory")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheMisses.WithLabelValues("memory")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheInvalidations.WithLabelValues("memory")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.cacheRemoved.WithLabelValues("memory")))
}

func TestWithMetrics_UsesRoutePattern(t *testing.T) {
	m, err := New(nil)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(m.WithMetrics)
	r.Get("/api/pacientes/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/pacientes/"+id, nil))
	}

	got := testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/pacientes/{id}", "418"))
	assert.Equal(t, 3.0, got)
}

func TestHandlerExposesCacheKeys(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)
	require.NoError(t, m.RegisterCacheKeys(func() float64 { return 7 }))
	require.NoError(t, m.RegisterPool(nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "cache_keys 7"), body)
}
