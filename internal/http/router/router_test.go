package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/nutrigest/internal/cache"
	"github.com/dropDatabas3/nutrigest/internal/http/controllers"
	mw "github.com/dropDatabas3/nutrigest/internal/http/middlewares"
	"github.com/dropDatabas3/nutrigest/internal/http/services"
	"github.com/dropDatabas3/nutrigest/internal/metrics"
	"github.com/dropDatabas3/nutrigest/internal/rate"
)

func newHandler(t *testing.T, limiter rate.Limiter) (http.Handler, cache.Store) {
	t.Helper()
	m, err := metrics.New(nil)
	require.NoError(t, err)

	store := cache.NewMemory(0, m)
	t.Cleanup(func() { _ = store.Close() })

	svcs := services.New(services.Deps{Cache: store, ListTTL: time.Minute, StatsTTL: time.Minute})
	return New(Deps{
		Controllers: controllers.New(svcs),
		RateLimit:   mw.RateLimitConfig{Limiter: limiter},
		Metrics:     m,
	}), store
}

func TestReadyzWithoutDatabase(t *testing.T) {
	h, _ := newHandler(t, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var body struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unavailable", body.Status)
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	h, _ := newHandler(t, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "ROUTE_NOT_FOUND")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/admin/cache/stats", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAdminCacheRoutes(t *testing.T) {
	h, store := newHandler(t, nil)
	ctx := context.Background()
	store.Set(ctx, "pacientes_5_all_all_name", []byte(`{}`), time.Minute)
	store.Set(ctx, "stats_5_dashboard", []byte(`{}`), time.Minute)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/cache/stats", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"keys":2`)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	req := httptest.NewRequest(http.MethodPost, "/api/admin/cache/invalidate", strings.NewReader(`{"prefix":""}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/admin/cache/invalidate", strings.NewReader(`{"prefix":"stats_5_"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"removed":1`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/cache/clear", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.EqualValues(t, 0, store.Stats(ctx).Keys)
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newHandler(t, nil)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/admin/cache/stats", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `/api/admin/cache/stats`)
}

func TestRateLimitOnlyOnAPI(t *testing.T) {
	h, _ := newHandler(t, rate.NewMemoryLimiter(1, time.Minute))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/cache/stats", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/cache/stats", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
