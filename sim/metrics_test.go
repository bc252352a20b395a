package sim

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.RecordPhase("baseline", 3)
		r.RecordDispatchStart("baseline")
		r.RecordDispatchEnd("baseline", 100, false)
		r.RecordPhaseDuration("baseline", 1)
	})
}

func TestRecorder_DispatchLifecycle(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.RecordDispatchStart("baseline")
	r.RecordDispatchStart("baseline")
	assert.Equal(t, 2.0, testutil.ToFloat64(r.inflight))

	r.RecordDispatchEnd("baseline", 100, false)
	r.RecordDispatchEnd("baseline", 0, true)

	assert.Equal(t, 0.0, testutil.ToFloat64(r.inflight))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.dispatches.WithLabelValues("baseline")))
	assert.Equal(t, 100.0, testutil.ToFloat64(r.samples.WithLabelValues("baseline")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.failures.WithLabelValues("baseline")))
}

func TestRecorder_ScheduledRun(t *testing.T) {
	// GIVEN a recorder attached to a 3-candidate run
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)
	s, err := NewScheduler(&fixedKernel{value: 1, offsets: ladderOffsets(3)}, testStatic(), testSpecs(3),
		SchedulerOptions{Recorder: r, Concurrency: 2})
	require.NoError(t, err)

	// WHEN it runs
	_, err = s.Run(nil)
	require.NoError(t, err)

	// THEN per-phase metrics match the schedule
	assert.Equal(t, 300.0, testutil.ToFloat64(r.samples.WithLabelValues("baseline")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.dispatches.WithLabelValues("top-half")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.candidatesLeft.WithLabelValues("top-25%")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.inflight))
	assert.Equal(t, 5, testutil.CollectAndCount(r.phaseDuration))
}

func TestNewRecorder_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRecorder(reg)
	assert.Panics(t, func() { NewRecorder(reg) })
}
