// Package metrics exposes Prometheus collectors for the attendance engine.
// A nil *Recorder is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "facelog"
)

type Recorder struct {
	outcomes       *prometheus.CounterVec
	matches        *prometheus.CounterVec
	matchScores    prometheus.Histogram
	resetRuns      *prometheus.CounterVec
	resetProcessed prometheus.Counter
	resetDuration  prometheus.Histogram
	lastResetUnix  prometheus.Gauge
}

// NewRecorder registers the engine collectors on reg. Pass a fresh
// prometheus.NewRegistry() in tests to avoid duplicate registration.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	auto := promauto.With(reg)
	return &Recorder{
		outcomes: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "attendance",
			Name:      "transitions_total",
			Help:      "Detections processed by the attendance state machine, by outcome",
		}, []string{"outcome"}),
		matches: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "facematch",
			Name:      "queries_total",
			Help:      "Face match queries, by result",
		}, []string{"result"}),
		matchScores: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "facematch",
			Name:      "best_score",
			Help:      "Best cosine similarity observed per query",
			Buckets:   prometheus.LinearBuckets(-0.2, 0.1, 13),
		}),
		resetRuns: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reset",
			Name:      "runs_total",
			Help:      "Daily reset sweeps, by status",
		}, []string{"status"}),
		resetProcessed: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reset",
			Name:      "identities_processed_total",
			Help:      "Identities reset to absent by daily sweeps",
		}),
		resetDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "reset",
			Name:      "duration_seconds",
			Help:      "Wall time of one reset sweep",
			Buckets:   prometheus.DefBuckets,
		}),
		lastResetUnix: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "reset",
			Name:      "last_success_unixtime",
			Help:      "Unix time of the last successful reset sweep",
		}),
	}
}

func (r *Recorder) ObserveOutcome(outcome string) {
	if r == nil {
		return
	}
	r.outcomes.WithLabelValues(outcome).Inc()
}

func (r *Recorder) ObserveMatch(score float64, matched bool) {
	if r == nil {
		return
	}
	result := "unmatched"
	if matched {
		result = "matched"
	}
	r.matches.WithLabelValues(result).Inc()
	r.matchScores.Observe(score)
}

func (r *Recorder) ObserveInvalidQuery() {
	if r == nil {
		return
	}
	r.matches.WithLabelValues("invalid").Inc()
}

func (r *Recorder) ObserveReset(count int, elapsed time.Duration, err error) {
	if r == nil {
		return
	}
	r.resetDuration.Observe(elapsed.Seconds())
	if err != nil {
		r.resetRuns.WithLabelValues("failed").Inc()
		return
	}
	r.resetRuns.WithLabelValues("ok").Inc()
	r.resetProcessed.Add(float64(count))
	r.lastResetUnix.SetToCurrentTime()
}
