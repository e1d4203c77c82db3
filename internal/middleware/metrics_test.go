package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gustavopolonio/nlw-journey/internal/metrics"
	"github.com/gustavopolonio/nlw-journey/internal/middleware"
)

func sampleCount(t *testing.T, method, route, status string) uint64 {
	t.Helper()
	h, ok := metrics.HTTPDuration.WithLabelValues(method, route, status).(prometheus.Histogram)
	require.True(t, ok)
	var m dto.Metric
	require.NoError(t, h.Write(&m))
	return m.GetHistogram().GetSampleCount()
}

// TestMetrics_recordsRoutePattern verifies that requests are labelled with
// the matched route rather than the concrete path.
func TestMetrics_recordsRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.NewMetrics())
	r.Delete("/links/{linkId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := sampleCount(t, http.MethodDelete, "/links/{linkId}", "404")

	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/links/"+id, nil))
	}

	assert.Equal(t, before+2, sampleCount(t, http.MethodDelete, "/links/{linkId}", "404"))
}

// TestMetrics_unmatchedRoute verifies that unknown paths share one label.
func TestMetrics_unmatchedRoute(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.NewMetrics())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {})

	before := sampleCount(t, http.MethodGet, "unmatched", "404")

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/does/not/exist", nil))

	assert.Equal(t, before+1, sampleCount(t, http.MethodGet, "unmatched", "404"))
}
