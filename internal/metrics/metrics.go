// Package metrics exposes Prometheus metrics for rendered speech.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sayas"

// Status labels.
const (
	StatusOK       = "ok"
	StatusRejected = "rejected"
	StatusError    = "error"
)

// Metrics records render activity. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry  *prometheus.Registry
	renders   *prometheus.CounterVec
	fragments prometheus.Histogram
	duration  *prometheus.HistogramVec
}

// New creates the render metrics on a fresh registry, along with Go runtime
// and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := newMetrics(reg)
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return m
}

// NewWithRegistry registers only the render metrics on reg.
func NewWithRegistry(reg *prometheus.Registry) *Metrics {
	return newMetrics(reg)
}

func newMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "renders_total",
				Help:      "Total number of render requests",
			},
			[]string{"transport", "status"},
		),
		fragments: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "render_fragments",
				Help:      "Number of markup fragments per rendered document",
				Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500},
			},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "render_duration_seconds",
				Help:      "Time spent validating and rendering a script",
				Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
			},
			[]string{"transport"},
		),
	}
	reg.MustRegister(m.renders, m.fragments, m.duration)
	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// ObserveRender records one render attempt.
func (m *Metrics) ObserveRender(transport, status string, fragments int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if transport == "" {
		transport = "unknown"
	}
	m.renders.WithLabelValues(transport, status).Inc()
	m.duration.WithLabelValues(transport).Observe(elapsed.Seconds())
	if status == StatusOK {
		m.fragments.Observe(float64(fragments))
	}
}
