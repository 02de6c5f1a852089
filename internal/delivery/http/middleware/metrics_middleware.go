package middleware

import (
	"net/http"
	"strconv"
	"time"

	"poliklinik-queue-backend/pkg/metrics"

	"github.com/gorilla/mux"
)

type MetricsMiddleware struct {
	collector *metrics.Collector
}

func NewMetricsMiddleware(collector *metrics.Collector) *MetricsMiddleware {
	return &MetricsMiddleware{collector: collector}
}

func (m *MetricsMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.collector.InFlightGauge.Inc()
		defer m.collector.InFlightGauge.Dec()

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		// Use the route template, not the raw path, to keep cardinality low.
		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if template, err := route.GetPathTemplate(); err == nil {
				path = template
			}
		}
		status := strconv.Itoa(recorder.status)
		m.collector.RequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		m.collector.RequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
	})
}
