package ollama

import "github.com/prometheus/client_golang/prometheus"

var (
	ollamaRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agency",
			Subsystem: "ollama",
			Name:      "requests_total",
			Help:      "Total number of inference requests by outcome",
		},
		[]string{"op", "outcome"},
	)

	ollamaRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "agency",
			Subsystem: "ollama",
			Name:      "request_duration_seconds",
			Help:      "Duration of inference requests in seconds, retries included",
			Buckets:   []float64{0.05, 0.25, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"op"},
	)

	ollamaRequestAttempts = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "agency",
			Subsystem: "ollama",
			Name:      "request_attempts",
			Help:      "HTTP attempts spent per inference request",
			Buckets:   []float64{1, 2, 3, 4, 5, 8},
		},
		[]string{"op"},
	)

	ollamaInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "agency",
			Subsystem: "ollama",
			Name:      "inflight_requests",
			Help:      "Requests currently holding an admission slot",
		},
	)

	admissionTimeoutsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "agency",
			Subsystem: "ollama",
			Name:      "admission_timeouts_total",
			Help:      "Requests rejected because no slot freed up in time",
		},
	)

	connectionProbesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "agency",
			Subsystem: "ollama",
			Name:      "connection_probes_total",
			Help:      "Construction-time liveness probes by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		ollamaRequestsTotal,
		ollamaRequestDuration,
		ollamaRequestAttempts,
		ollamaInflight,
		admissionTimeoutsTotal,
		connectionProbesTotal,
	)
}
