package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TripMetrics records trip persistence activity. A nil *TripMetrics is valid and
// records nothing.
type TripMetrics struct {
	writes   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	sessions prometheus.Counter
}

// NewTripMetrics registers the trip metrics on the provided registerer.
func NewTripMetrics(reg prometheus.Registerer) *TripMetrics {
	if reg == nil {
		return &TripMetrics{}
	}
	writes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trip_writes_total",
		Help: "Trip save and confirm calls by outcome.",
	}, []string{"action", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trip_write_duration_seconds",
		Help:    "Duration of trip writes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"action"})
	sessions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planning_sessions_started_total",
		Help: "Planning sessions started since process start.",
	})
	reg.MustRegister(writes, duration, sessions)
	return &TripMetrics{
		writes:   writes,
		duration: duration,
		sessions: sessions,
	}
}

// ObserveWrite counts one reconciler write and its latency.
func (m *TripMetrics) ObserveWrite(action, outcome string, d time.Duration) {
	if m == nil || m.writes == nil {
		return
	}
	m.writes.WithLabelValues(normalizeLabel(action), normalizeLabel(outcome)).Inc()
	m.duration.WithLabelValues(normalizeLabel(action)).Observe(d.Seconds())
}

func (m *TripMetrics) SessionStarted() {
	if m == nil || m.sessions == nil {
		return
	}
	m.sessions.Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
