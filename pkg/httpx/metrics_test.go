package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AkshatMishra0/Derivity-ai/pkg/httpx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsRecordsRoutePattern(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics, err := httpx.NewHTTPMetrics(httpx.HTTPMetricsOptions{Registerer: registry})
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	handler := metrics.Middleware(mux)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/login", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	labels := prometheus.Labels{"method": http.MethodPost, "route": "POST /api/login", "status": "401"}
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.Requests.With(labels)))
	require.Equal(t, float64(0), testutil.ToFloat64(metrics.InFlight))
	require.Positive(t, testutil.CollectAndCount(metrics.Duration))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	unmatched := prometheus.Labels{"method": http.MethodGet, "route": "unmatched", "status": "404"}
	require.Equal(t, float64(1), testutil.ToFloat64(metrics.Requests.With(unmatched)))
}

func TestNewHTTPMetricsReusesRegisteredCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	first, err := httpx.NewHTTPMetrics(httpx.HTTPMetricsOptions{Registerer: registry})
	require.NoError(t, err)
	second, err := httpx.NewHTTPMetrics(httpx.HTTPMetricsOptions{Registerer: registry})
	require.NoError(t, err)

	require.Same(t, first.Requests, second.Requests)
}

func TestHTTPMetricsNilIsNoop(t *testing.T) {
	var metrics *httpx.HTTPMetrics
	handler := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)
}
