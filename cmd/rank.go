package cmd

import (
	"time"

	"github.com/racesim/skill-ranker/sim"
	"github.com/racesim/skill-ranker/sim/trace"
)

// rankRun is a prepared ranking run: validated inputs, a scheduler ready to
// start and the trace it records into (nil when tracing is off).
type rankRun struct {
	scheduler *sim.Scheduler
	trace     *trace.SimulationTrace
}

// newRankRun builds the kernel, static data and scheduler for cfg. Any error
// is reported before a single simulation is dispatched.
func newRankRun(cfg *RunConfig, recorder *sim.Recorder) (*rankRun, error) {
	kernel, err := sim.NewKernel(cfg.Kernel)
	if err != nil {
		return nil, err
	}

	seed := cfg.Scheduler.Seed
	if !cfg.Scheduler.Deterministic {
		seed = time.Now().UnixNano()
	}
	static, err := sim.NewStaticData(cfg.Courses, cfg.Race, cfg.Baseline,
		sim.SimOptions{Seed: cfg.Scheduler.Seed, Params: cfg.Options},
		cfg.Conditions, sim.NewPartitionedRNG(sim.NewSimulationKey(seed)))
	if err != nil {
		return nil, err
	}

	phases := sim.DefaultPhases()
	for i := range phases {
		phases[i].Increment = cfg.Scheduler.Increment
	}

	var tr *trace.SimulationTrace
	if level := trace.TraceLevel(cfg.Scheduler.TraceLevel); level != "" && level != trace.TraceLevelNone {
		tr = trace.NewSimulationTrace(trace.TraceConfig{Level: level})
	}

	s, err := sim.NewScheduler(kernel, static, cfg.Candidates, sim.SchedulerOptions{
		Phases:        phases,
		Concurrency:   cfg.Scheduler.Concurrency,
		CIPercent:     cfg.Scheduler.CIPercent,
		Deterministic: cfg.Scheduler.Deterministic,
		Seed:          cfg.Scheduler.Seed,
		Recorder:      recorder,
		Trace:         tr,
	})
	if err != nil {
		return nil, err
	}
	return &rankRun{scheduler: s, trace: tr}, nil
}
