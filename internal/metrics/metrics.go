// Package metrics exposes Prometheus instrumentation for expert batches.
// It provides an orchestration.Observer that records invocation outcomes and
// an HTTP handler for the /metrics endpoint.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the collectors for one process.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	inflight    prometheus.Gauge
	invocations *prometheus.CounterVec
	duration    prometheus.Histogram
	batches     prometheus.Counter
}

// NewMetrics creates and registers the expertpanel collectors on a private
// registry, alongside the standard Go runtime collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "expertpanel_inflight_invocations",
			Help: "Number of completion requests currently in flight.",
		}),
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "expertpanel_invocations_total",
			Help: "Completed expert invocations by outcome.",
		}, []string{"status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "expertpanel_invocation_duration_seconds",
			Help:    "Wall-clock duration of individual completion requests.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "expertpanel_batches_total",
			Help: "Number of batches executed.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.inflight,
		m.invocations,
		m.duration,
		m.batches,
	)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})

	return m
}

// WritePrometheus serves the metrics endpoint.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// BatchStarted counts a batch execution.
func (m *Metrics) BatchStarted() {
	m.batches.Inc()
}

// Observer adapts Metrics to the orchestration.Observer interface.
// All methods are safe for concurrent use; Prometheus collectors handle
// their own synchronization.
type Observer struct {
	m *Metrics
}

// NewObserver creates an observer recording into m.
func NewObserver(m *Metrics) *Observer {
	return &Observer{m: m}
}

// OnStart marks a request in flight.
func (o *Observer) OnStart(string) {
	o.m.inflight.Inc()
}

// OnSuccess records a successful invocation and its duration.
func (o *Observer) OnSuccess(_ string, duration time.Duration) {
	o.m.inflight.Dec()
	o.m.invocations.WithLabelValues("success").Inc()
	o.m.duration.Observe(duration.Seconds())
}

// OnFailure records a failed invocation and its duration.
func (o *Observer) OnFailure(_ string, duration time.Duration, _ error) {
	o.m.inflight.Dec()
	o.m.invocations.WithLabelValues("failure").Inc()
	o.m.duration.Observe(duration.Seconds())
}

// Serve starts a blocking HTTP listener exposing /metrics on addr.
func (m *Metrics) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", m.WritePrometheus)
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return server.ListenAndServe()
}
