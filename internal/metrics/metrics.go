// Package metrics exposes Prometheus counters for onboarding sessions and
// submission delivery.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "onboard"

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder owns a private registry and the collectors registered on it.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	submissions    *prometheus.CounterVec
	deliveries     *prometheus.CounterVec
	deliverySecs   *prometheus.HistogramVec
	transitions    *prometheus.CounterVec
	sessionsActive prometheus.Gauge
}

// New creates a Recorder with all collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Completed submissions by aggregate delivery outcome.",
			},
			[]string{"outcome"},
		),
		deliveries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sink_deliveries_total",
				Help:      "Delivery attempts per sink and outcome.",
			},
			[]string{"sink", "outcome"},
		),
		deliverySecs: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "sink_delivery_seconds",
				Help:      "Time spent delivering one submission to a sink.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"sink"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "step_transitions_total",
				Help:      "Wizard step changes by direction.",
			},
			[]string{"direction"},
		),
		sessionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "sessions_active",
				Help:      "Wizard sessions currently held by the HTTP adapter.",
			},
		),
	}

	r.registry.MustRegister(
		r.submissions,
		r.deliveries,
		r.deliverySecs,
		r.transitions,
		r.sessionsActive,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Submission counts one finished fan-out.
func (r *Recorder) Submission(err error) {
	if r == nil {
		return
	}
	r.submissions.WithLabelValues(outcome(err)).Inc()
}

// Delivery counts one sink attempt.
func (r *Recorder) Delivery(sink string, err error, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.deliveries.WithLabelValues(sink, outcome(err)).Inc()
	r.deliverySecs.WithLabelValues(sink).Observe(elapsed.Seconds())
}

// Transition counts a step change.
func (r *Recorder) Transition(direction string) {
	if r == nil {
		return
	}
	r.transitions.WithLabelValues(direction).Inc()
}

// SessionOpened increments the active session gauge.
func (r *Recorder) SessionOpened() {
	if r == nil {
		return
	}
	r.sessionsActive.Inc()
}

// SessionClosed decrements the active session gauge.
func (r *Recorder) SessionClosed() {
	if r == nil {
		return
	}
	r.sessionsActive.Dec()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
