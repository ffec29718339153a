// This file defines the Prometheus instrumentation middleware. Request
// counts and latencies are recorded per normalized path so that the
// per-video endpoints do not explode label cardinality.
package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ytmusic_gateway_requests_total",
		Help: "Number of HTTP requests processed, by path, method and status code.",
	}, []string{"path", "method", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ytmusic_gateway_request_duration_seconds",
		Help:    "HTTP request latency, by normalized path.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})
)

// statusWriter captures the status code written by a handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// metricPath collapses per-resource path segments into a placeholder.
func metricPath(p string) string {
	for _, prefix := range []string{"/stream/", "/dash/", "/share/"} {
		if strings.HasPrefix(p, prefix) {
			return prefix + "{id}"
		}
	}
	return p
}

// Metrics wraps another http.Handler and records Prometheus request
// metrics for every response.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		path := metricPath(r.URL.Path)
		requestsTotal.WithLabelValues(path, r.Method, strconv.Itoa(sw.status)).Inc()
		requestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	})
}
