package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge

	VisitsRegisteredTotal prometheus.Counter
	TransitionsTotal      *prometheus.CounterVec
	VisitsArchivedTotal   *prometheus.CounterVec
	SequenceRetriesTotal  prometheus.Counter
}

func NewCollector(serviceName string) *Collector {
	return &Collector{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "path", "status"}),

		InFlightGauge: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		VisitsRegisteredTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "queue",
			Name:      "visits_registered_total",
			Help:      "Total visits registered.",
		}),

		TransitionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "queue",
			Name:      "transitions_total",
			Help:      "Total lifecycle transitions by target status.",
		}, []string{"status"}),

		VisitsArchivedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "queue",
			Name:      "visits_archived_total",
			Help:      "Total visits archived by terminal status.",
		}, []string{"status"}),

		SequenceRetriesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "queue",
			Name:      "sequence_retries_total",
			Help:      "Registration retries caused by sequence allocation conflicts.",
		}),
	}
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
