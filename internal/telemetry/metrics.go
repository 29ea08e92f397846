// Package telemetry exposes Prometheus metrics for aggregation timings and
// dataset reloads.
package telemetry

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aristath/industry-overview/internal/events"
)

const namespace = "industry_overview"

var errFailedReload = errors.New("reload failed")

// Recorder owns a private registry so tests can build as many as they need.
type Recorder struct {
	registry     *prometheus.Registry
	aggregations *prometheus.HistogramVec
	reloads      *prometheus.CounterVec
	datasetRows  *prometheus.GaugeVec
}

// NewRecorder registers the service metrics plus the Go runtime collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		aggregations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "aggregation_duration_seconds",
			Help:      "Time spent computing one dashboard view.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"view", "status"}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_reloads_total",
			Help:      "Dataset reload attempts by result.",
		}, []string{"result"}),
		datasetRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_rows",
			Help:      "Rows in the active dataset snapshot by table.",
		}, []string{"table"}),
	}
	r.registry.MustRegister(
		r.aggregations,
		r.reloads,
		r.datasetRows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveAggregation records how long one view took and which status it returned.
func (r *Recorder) ObserveAggregation(view, status string, d time.Duration) {
	r.aggregations.WithLabelValues(view, status).Observe(d.Seconds())
}

// ObserveReload counts a reload and, on success, updates the row gauges.
func (r *Recorder) ObserveReload(err error, metrics, topics, leaders int) {
	if err != nil {
		r.reloads.WithLabelValues("failure").Inc()
		return
	}
	r.reloads.WithLabelValues("success").Inc()
	r.datasetRows.WithLabelValues("metrics").Set(float64(metrics))
	r.datasetRows.WithLabelValues("topics").Set(float64(topics))
	r.datasetRows.WithLabelValues("leaders").Set(float64(leaders))
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Attach counts dataset reloads announced on bus.
func (r *Recorder) Attach(bus *events.Bus) {
	bus.Subscribe(events.DatasetReloaded, func(e *events.Event) {
		if d, ok := e.Data.(*events.DatasetReloadedData); ok {
			r.ObserveReload(nil, d.MetricRows, d.TopicRows, d.LeaderRows)
		}
	})
	bus.Subscribe(events.DatasetReloadFailed, func(e *events.Event) {
		r.ObserveReload(errFailedReload, 0, 0, 0)
	})
}
