package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packup/packup/internal/middleware"
)

// TestMetrics_CountsRequests verifies that a handled request increments the
// request counter with the method and status labels.
func TestMetrics_CountsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := middleware.NewMetrics(reg)
	h := m.Middleware()(trivialHandler)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	count := testutil.CollectAndCount(reg, "packup_http_requests_total")
	assert.Equal(t, 1, count)
}

// TestMetrics_RegistersBothCollectors verifies the counter and histogram are
// both registered under their expected names.
func TestMetrics_RegistersBothCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := middleware.NewMetrics(reg)
	h := m.Middleware()(trivialHandler)

	req := httptest.NewRequest(http.MethodPost, "/lists", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["packup_http_requests_total"])
	assert.True(t, names["packup_http_request_duration_seconds"])
}
