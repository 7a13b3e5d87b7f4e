// internal/metrics/aggregator.go

// Package metrics instruments completion transports with Prometheus
// collectors and can expose them over HTTP.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "promptlab"

// Request outcomes used as the status label.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Aggregator owns the completion collectors.
type Aggregator struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	firstByte *prometheus.HistogramVec
	chunks    *prometheus.CounterVec
}

var (
	instance *Aggregator
	once     sync.Once
)

// GetInstance returns the process-wide Aggregator registered with the
// default Prometheus registry.
func GetInstance() *Aggregator {
	once.Do(func() {
		instance = NewAggregator(prometheus.DefaultRegisterer)
	})
	return instance
}

// NewAggregator creates the collectors and registers them with reg.
func NewAggregator(reg prometheus.Registerer) *Aggregator {
	a := &Aggregator{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "llm",
				Name:      "requests_total",
				Help:      "Total number of streamed completion requests",
			},
			[]string{"model", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "llm",
				Name:      "request_duration_seconds",
				Help:      "Duration of streamed completion requests in seconds",
				Buckets:   []float64{0.5, 1, 2, 3, 5, 7, 10, 15, 20, 30, 45, 60},
			},
			[]string{"model", "status"},
		),
		firstByte: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "llm",
				Name:      "time_to_first_chunk_seconds",
				Help:      "Time from request start to the first streamed content fragment",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 3, 5, 10},
			},
			[]string{"model"},
		),
		chunks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "llm",
				Name:      "chunks_total",
				Help:      "Total number of streamed content fragments",
			},
			[]string{"model"},
		),
	}
	if reg != nil {
		reg.MustRegister(a.requests, a.duration, a.firstByte, a.chunks)
	}
	return a
}

// Record stores the outcome of one request. ttft is zero when no fragment
// arrived.
func (a *Aggregator) Record(model, status string, elapsed, ttft time.Duration, chunks int) {
	if model == "" {
		model = "unknown"
	}
	a.requests.WithLabelValues(model, status).Inc()
	a.duration.WithLabelValues(model, status).Observe(elapsed.Seconds())
	if ttft > 0 {
		a.firstByte.WithLabelValues(model).Observe(ttft.Seconds())
	}
	if chunks > 0 {
		a.chunks.WithLabelValues(model).Add(float64(chunks))
	}
}
