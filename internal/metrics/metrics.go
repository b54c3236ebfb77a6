// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cuptrip"

// Report sources.
const (
	SourceStored  = "stored"
	SourcePreview = "preview"
)

// Metrics groups the collectors used by the server.
type Metrics struct {
	gatherer prometheus.Gatherer

	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Reports         *prometheus.CounterVec
	Transfers       prometheus.Gauge
}

// New registers the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		gatherer: reg,
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		Reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlement_reports_total",
			Help:      "Settlement reports computed, by data source.",
		}, []string{"source"}),
		Transfers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "settlement_transfers",
			Help:      "Transfers in the most recent report built from stored data.",
		}),
	}

	reg.MustRegister(m.Requests, m.RequestDuration, m.Reports, m.Transfers)
	return m
}

// ObserveReport records a computed settlement report.
func (m *Metrics) ObserveReport(source string, transfers int) {
	if m == nil {
		return
	}
	m.Reports.WithLabelValues(source).Inc()
	if source == SourceStored {
		m.Transfers.Set(float64(transfers))
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
