// Package metrics defines the Prometheus instruments of the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for Extractions.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid" // rejected by validation or by the parser
	OutcomeError   = "error"   // internal fault
)

// Metrics groups the extraction instruments.
type Metrics struct {
	Extractions   *prometheus.CounterVec
	Latency       *prometheus.HistogramVec
	PayloadBytes  prometheus.Histogram
	AudioDuration *prometheus.HistogramVec
}

// New creates the instruments and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "audioinfo",
			Name:      "extractions_total",
			Help:      "Metadata extractions by format and outcome.",
		}, []string{"format", "outcome"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "audioinfo",
			Name:      "extraction_seconds",
			Help:      "Time spent parsing one buffer.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"format"}),
		PayloadBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "audioinfo",
			Name:      "payload_bytes",
			Help:      "Size of accepted audio payloads.",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
		}),
		AudioDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "audioinfo",
			Name:      "audio_duration_seconds",
			Help:      "Reported duration of successfully parsed audio.",
			Buckets:   []float64{1, 5, 15, 30, 60, 180, 600, 1800, 3600},
		}, []string{"format"}),
	}
	reg.MustRegister(m.Extractions, m.Latency, m.PayloadBytes, m.AudioDuration)
	return m
}

// ObserveExtraction records one parse attempt for format.
func (m *Metrics) ObserveExtraction(format, outcome string, elapsed time.Duration) {
	m.Extractions.WithLabelValues(format, outcome).Inc()
	m.Latency.WithLabelValues(format).Observe(elapsed.Seconds())
}

// ObserveRejected records a request that never reached a parser.
func (m *Metrics) ObserveRejected() {
	m.Extractions.WithLabelValues("unknown", OutcomeInvalid).Inc()
}
