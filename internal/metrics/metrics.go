package metrics

import (
	"net/http"
	"time"

	"irrigation_gateway/internal/retry"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "irrigation_gateway"

// Outcome label values.
const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Recorder holds the gateway's Prometheus collectors on a private registry.
type Recorder struct {
	attempts  *prometheus.CounterVec
	exhausted *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	gateWait  prometheus.Histogram
	responses *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates a recorder with all collectors registered.
func New() *Recorder {
	registry := prometheus.NewRegistry()

	r := &Recorder{
		registry: registry,

		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "device_attempts_total",
				Help:      "Device call attempts by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		exhausted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "device_retries_exhausted_total",
				Help:      "Operations that failed on every attempt",
			},
			[]string{"operation"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "device_attempt_duration_seconds",
				Help:      "Duration of single device call attempts",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		gateWait: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "device_gate_wait_seconds",
				Help:      "Time requests waited for exclusive use of the controller",
				Buckets:   []float64{.001, .01, .1, .5, 1, 2.5, 5, 10, 30},
			},
		),
		responses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Gateway operations by name and outcome",
			},
			[]string{"operation", "outcome"},
		),
	}

	registry.MustRegister(
		r.attempts,
		r.exhausted,
		r.duration,
		r.gateWait,
		r.responses,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveAttempt is a retry.Observer.
func (r *Recorder) ObserveAttempt(a retry.Attempt) {
	r.attempts.WithLabelValues(a.Operation, outcome(a.Succeeded())).Inc()
	r.duration.WithLabelValues(a.Operation).Observe(a.Elapsed.Seconds())
	if a.Final() && !a.Succeeded() {
		r.exhausted.WithLabelValues(a.Operation).Inc()
	}
}

// ObserveGateWait records time spent waiting for the device gate.
func (r *Recorder) ObserveGateWait(d time.Duration) {
	r.gateWait.Observe(d.Seconds())
}

// ObserveResponse counts one gateway operation result.
func (r *Recorder) ObserveResponse(operation string, success bool) {
	r.responses.WithLabelValues(operation, outcome(success)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

func outcome(ok bool) string {
	if ok {
		return outcomeSuccess
	}
	return outcomeFailure
}
