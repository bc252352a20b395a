package sim

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exports scheduler activity as Prometheus metrics.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	dispatches     *prometheus.CounterVec
	samples        *prometheus.CounterVec
	failures       *prometheus.CounterVec
	phaseDuration  *prometheus.HistogramVec
	inflight       prometheus.Gauge
	candidatesLeft *prometheus.GaugeVec
}

// NewRecorder registers the scheduler metrics with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		dispatches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skillranker_dispatches_total",
				Help: "Total number of simulation tasks dispatched to workers",
			},
			[]string{"phase"},
		),
		samples: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skillranker_samples_total",
				Help: "Total number of raw trial outcomes collected",
			},
			[]string{"phase"},
		),
		failures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "skillranker_worker_failures_total",
				Help: "Total number of simulation tasks whose worker failed",
			},
			[]string{"phase"},
		),
		phaseDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "skillranker_phase_duration_seconds",
				Help:    "Wall-clock duration of each scheduling phase",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
			},
			[]string{"phase"},
		),
		inflight: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "skillranker_inflight_workers",
				Help: "Number of workers currently running a task",
			},
		),
		candidatesLeft: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "skillranker_phase_candidates",
				Help: "Number of candidates selected for the most recent run of each phase",
			},
			[]string{"phase"},
		),
	}
}

// RecordPhase records that a phase selected n candidates.
func (r *Recorder) RecordPhase(phase string, n int) {
	if r == nil {
		return
	}
	r.candidatesLeft.WithLabelValues(phase).Set(float64(n))
}

// RecordDispatchStart marks a worker as in flight.
func (r *Recorder) RecordDispatchStart(phase string) {
	if r == nil {
		return
	}
	r.dispatches.WithLabelValues(phase).Inc()
	r.inflight.Inc()
}

// RecordDispatchEnd marks a worker as finished with samples outcomes, or failed.
func (r *Recorder) RecordDispatchEnd(phase string, samples int, failed bool) {
	if r == nil {
		return
	}
	r.inflight.Dec()
	if failed {
		r.failures.WithLabelValues(phase).Inc()
		return
	}
	r.samples.WithLabelValues(phase).Add(float64(samples))
}

// RecordPhaseDuration records how long a phase took in seconds.
func (r *Recorder) RecordPhaseDuration(phase string, seconds float64) {
	if r == nil {
		return
	}
	r.phaseDuration.WithLabelValues(phase).Observe(seconds)
}
