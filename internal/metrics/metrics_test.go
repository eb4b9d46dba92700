package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())

	r.ObserveOutcome("checkin")
	r.ObserveOutcome("checkin")
	r.ObserveOutcome("debounced")
	assert.Equal(t, 2.0, testutil.ToFloat64(r.outcomes.WithLabelValues("checkin")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.outcomes.WithLabelValues("debounced")))

	r.ObserveMatch(0.91, true)
	r.ObserveMatch(0.12, false)
	r.ObserveInvalidQuery()
	assert.Equal(t, 1.0, testutil.ToFloat64(r.matches.WithLabelValues("matched")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.matches.WithLabelValues("unmatched")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.matches.WithLabelValues("invalid")))

	r.ObserveReset(12, time.Second, nil)
	r.ObserveReset(0, time.Second, errors.New("db down"))
	assert.Equal(t, 12.0, testutil.ToFloat64(r.resetProcessed))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.resetRuns.WithLabelValues("failed")))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObserveOutcome("checkin")
		r.ObserveMatch(1, true)
		r.ObserveInvalidQuery()
		r.ObserveReset(1, time.Second, nil)
	})
}
