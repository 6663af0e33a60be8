package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRender(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.ObserveRender("http", StatusOK, 4, time.Millisecond)
	m.ObserveRender("http", StatusOK, 2, time.Millisecond)
	m.ObserveRender("grpc", StatusRejected, 0, time.Millisecond)
	m.ObserveRender("", StatusError, 0, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.renders.WithLabelValues("http", StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.renders.WithLabelValues("grpc", StatusRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.renders.WithLabelValues("unknown", StatusError)))
	assert.Equal(t, 3, testutil.CollectAndCount(m.renders))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRender("http", StatusOK, 1, time.Millisecond)
	})
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveRender("http", StatusOK, 3, time.Millisecond)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "sayas_renders_total")
	assert.Contains(t, string(body), "sayas_render_fragments")
	assert.Contains(t, string(body), "go_goroutines")
}
