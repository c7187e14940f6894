package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the store,
// the relay and the HTTP surface.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	mutationTotal   *prometheus.CounterVec
	messageTotal    *prometheus.CounterVec
	snapshotSaves   *prometheus.CounterVec
	relayLatency    prometheus.Observer
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	mutationTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_mutations_total",
		Help: "Accepted store mutations by operation",
	}, []string{"operation"})

	messageTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_messages_total",
		Help: "Relay dispatches by resolved delivery status",
	}, []string{"status"})

	snapshotSaves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "snapshot_saves_total",
		Help: "Durable snapshot save attempts by outcome",
	}, []string{"outcome"})

	relayLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "relay_dispatch_seconds",
		Help:    "Time spent resolving relay dispatches",
		Buckets: prometheus.DefBuckets,
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, mutationTotal, messageTotal, snapshotSaves, relayLatency, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		mutationTotal:   mutationTotal,
		messageTotal:    messageTotal,
		snapshotSaves:   snapshotSaves,
		relayLatency:    relayLatency,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordMutation counts one accepted store mutation.
func (m *MetricsService) RecordMutation(operation string) {
	if m == nil {
		return
	}
	m.mutationTotal.WithLabelValues(operation).Inc()
}

// RecordMessage counts one resolved relay dispatch.
func (m *MetricsService) RecordMessage(status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.messageTotal.WithLabelValues(status).Inc()
	m.relayLatency.Observe(duration.Seconds())
}

// RecordSnapshotSave counts one snapshot save attempt.
func (m *MetricsService) RecordSnapshotSave(err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.snapshotSaves.WithLabelValues(outcome).Inc()
}
