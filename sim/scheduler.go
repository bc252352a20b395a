package sim

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/racesim/skill-ranker/sim/trace"
)

// SchedulerOptions tune a ranking run. Zero values select the defaults.
type SchedulerOptions struct {
	Phases        []Phase // nil = DefaultPhases()
	Concurrency   int     // max workers in flight; <= 0 = runtime.NumCPU()
	CIPercent     float64 // 0 = DefaultCIPercent
	Deterministic bool    // derive every seed from Seed
	Seed          int64
	Recorder      *Recorder              // optional
	Trace         *trace.SimulationTrace // optional
}

// Scheduler ranks candidates by successive elimination: each phase picks a
// subset of the current ranking, gives every member Increment more samples,
// and the next phase re-ranks once all of them have settled.
type Scheduler struct {
	dispatcher   *Dispatcher
	candidates   []*Candidate
	byID         map[string]*Candidate
	phases       []Phase
	concurrency  int
	ciPercent    float64
	seeds        seedSource
	combinations int
	recorder     *Recorder
	trace        *trace.SimulationTrace

	// mu guards candidate accumulators, trace and sink in completion handlers.
	mu   sync.Mutex
	sink EventSink
}

// NewScheduler validates the inputs and prepares a run. It fails fast with
// ErrNoCandidates or a *ConfigurationError before any work is done.
func NewScheduler(kernel Kernel, static *StaticData, specs []CandidateSpec, opts SchedulerOptions) (*Scheduler, error) {
	if kernel == nil {
		return nil, configErrorf("kernel", "a simulation kernel is required")
	}
	if static == nil {
		return nil, configErrorf("static", "static race data is required")
	}
	if len(specs) == 0 {
		return nil, ErrNoCandidates
	}

	phases := opts.Phases
	if phases == nil {
		phases = DefaultPhases()
	}
	for i, p := range phases {
		if p.Select == nil {
			return nil, configErrorf(fmt.Sprintf("phases[%d]", i), "phase %q has no selector", p.Name)
		}
		if p.Increment < 1 {
			return nil, configErrorf(fmt.Sprintf("phases[%d]", i), "phase %q increment must be >= 1, got %d", p.Name, p.Increment)
		}
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	ci := opts.CIPercent
	if ci == 0 {
		ci = DefaultCIPercent
	}
	if ci <= 0 || ci > 100 {
		return nil, configErrorf("ci", "must be in (0, 100], got %v", ci)
	}

	s := &Scheduler{
		dispatcher:  NewDispatcher(kernel, static, ci),
		candidates:  make([]*Candidate, 0, len(specs)),
		byID:        make(map[string]*Candidate, len(specs)),
		phases:      phases,
		concurrency: concurrency,
		ciPercent:   ci,
		recorder:    opts.Recorder,
		trace:       opts.Trace,
		sink:        discardEvents,
	}
	for i, spec := range specs {
		if spec.SkillID == "" {
			return nil, configErrorf(fmt.Sprintf("candidates[%d].skill_id", i), "skill id is required")
		}
		if _, dup := s.byID[spec.SkillID]; dup {
			return nil, configErrorf(fmt.Sprintf("candidates[%d].skill_id", i), "duplicate skill id %s", spec.SkillID)
		}
		c := newCandidate(spec)
		s.candidates = append(s.candidates, c)
		s.byID[c.SkillID] = c
	}

	s.seeds = seedSource{deterministic: opts.Deterministic, seed: opts.Seed}
	if !opts.Deterministic {
		rng := NewPartitionedRNG(NewSimulationKey(time.Now().UnixNano()))
		s.seeds.rng = rng.Seeds()
	}

	s.combinations = 1
	if first := s.dispatcher.BuildTask(s.candidates[0], 0, 0); NeedsEnumeration(first) {
		s.combinations = TaskDimensions(first).Size()
	}
	return s, nil
}

// Candidates returns the scheduler's candidates in input order.
func (s *Scheduler) Candidates() []*Candidate {
	return s.candidates
}

// Concurrency returns the resolved worker limit.
func (s *Scheduler) Concurrency() int {
	return s.concurrency
}

// Run executes every phase in order and returns the final ranking of all
// candidates with at least one sample. Any worker failure aborts the run:
// no further dispatches are started, workers already running finish, then
// an error event is emitted and the error returned. sink may be nil.
func (s *Scheduler) Run(sink EventSink) ([]SkillResult, error) {
	if sink != nil {
		s.sink = sink
	}
	if s.combinations > 1 {
		s.emit(infoEvent(fmt.Sprintf("each task spans %d race-condition combinations", s.combinations)))
	}

	for i, phase := range s.phases {
		ranked := s.ranking()
		subset := phase.Select(ranked)
		s.recordPhase(i, phase, ranked, subset)
		if len(subset) == 0 {
			logrus.Debugf("phase %s: no candidates selected, skipping", phase.Name)
			continue
		}

		logrus.Infof("phase %s: %d of %d candidates, +%d samples each", phase.Name, len(subset), len(ranked), phase.Increment)
		s.emit(phaseEvent(phase.Name))
		if err := s.runPhase(phase, subset); err != nil {
			err = fmt.Errorf("phase %s: %w", phase.Name, err)
			s.emit(errorEvent(err))
			return nil, err
		}
	}

	final := s.sampledRanking()
	s.emit(completeEvent(final))
	return final, nil
}

// runPhase dispatches one task per selected candidate and waits for all of
// them. Ranking is not touched until every task has settled.
func (s *Scheduler) runPhase(phase Phase, subset []SkillResult) error {
	start := time.Now()
	s.recorder.RecordPhase(phase.Name, len(subset))

	factories := make([]TaskFactory[int], 0, len(subset))
	for _, r := range subset {
		c, ok := s.byID[r.SkillID]
		if !ok {
			return fmt.Errorf("selector returned unknown skill %q", r.SkillID)
		}
		task := s.dispatcher.BuildTask(c, phase.Increment, s.seeds.next(c))
		factories = append(factories, s.taskFactory(phase.Name, c, task))
	}

	limit := min(len(subset), s.concurrency)
	_, err := RunLimited(factories, limit)
	s.recorder.RecordPhaseDuration(phase.Name, time.Since(start).Seconds())
	return err
}

func (s *Scheduler) taskFactory(phase string, c *Candidate, task SimulationTask) TaskFactory[int] {
	return func() (int, error) {
		s.recorder.RecordDispatchStart(phase)
		logrus.Debugf("dispatch %s (%s): %d samples, seed %d", c.SkillID, phase, task.NumSimulations, task.BaseSeed)

		out, err := s.dispatcher.Dispatch(task)
		if err != nil {
			s.recorder.RecordDispatchEnd(phase, 0, true)
			var wf *WorkerFailure
			if errors.As(err, &wf) {
				wf.Phase = phase
			}
			return 0, err
		}
		s.recorder.RecordDispatchEnd(phase, len(out.Raw), false)
		s.complete(phase, c, task, out.Raw)
		return len(out.Raw), nil
	}
}

// complete appends a finished task's outcomes and reports the candidate's
// updated result.
func (s *Scheduler) complete(phase string, c *Candidate, task SimulationTask, raw []float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.RawResults = append(c.RawResults, raw...)
	if s.trace != nil {
		s.trace.RecordDispatch(trace.DispatchRecord{
			Phase:        phase,
			SkillID:      c.SkillID,
			BaseSeed:     task.BaseSeed,
			Requested:    task.NumSimulations,
			Collected:    len(raw),
			Combinations: s.combinations,
		})
	}
	s.sink(resultEvent(c.Stats(s.ciPercent)))
}

func (s *Scheduler) emit(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sink(e)
}

// ranking orders sampled candidates by efficiency, best first. Before any
// candidate has samples it returns every candidate in input order.
func (s *Scheduler) ranking() []SkillResult {
	if ranked := s.sampledRanking(); len(ranked) > 0 {
		return ranked
	}
	results := make([]SkillResult, len(s.candidates))
	for i, c := range s.candidates {
		results[i] = c.Stats(s.ciPercent)
	}
	return results
}

func (s *Scheduler) sampledRanking() []SkillResult {
	results := make([]SkillResult, 0, len(s.candidates))
	for _, c := range s.candidates {
		if len(c.RawResults) == 0 {
			continue
		}
		results = append(results, c.Stats(s.ciPercent))
	}
	rankResults(results)
	return results
}

func (s *Scheduler) recordPhase(index int, phase Phase, ranked, subset []SkillResult) {
	if s.trace == nil {
		return
	}
	record := trace.PhaseRecord{
		Phase:     phase.Name,
		Index:     index,
		Increment: phase.Increment,
		Selected:  make([]trace.CandidateScore, 0, len(subset)),
	}
	selected := make(map[string]bool, len(subset))
	for _, r := range subset {
		selected[r.SkillID] = true
		record.Selected = append(record.Selected, trace.CandidateScore{
			SkillID:        r.SkillID,
			Name:           r.Skill,
			Score:          r.MeanLengthPerCost,
			NumSimulations: r.NumSimulations,
		})
	}
	bestEliminated := -1
	for i, r := range ranked {
		if selected[r.SkillID] {
			continue
		}
		if bestEliminated < 0 {
			bestEliminated = i
		}
		record.Eliminated = append(record.Eliminated, r.SkillID)
	}
	if bestEliminated >= 0 && len(subset) > 0 {
		record.CutoffMargin = subset[len(subset)-1].MeanLengthPerCost - ranked[bestEliminated].MeanLengthPerCost
	}
	s.trace.RecordPhase(record)
}
