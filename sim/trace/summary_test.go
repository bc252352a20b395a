package trace

import (
	"math"
	"testing"
)

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	s := Summarize(nil)
	if s.TotalPhases != 0 || s.TotalDispatches != 0 || s.TotalSamples != 0 {
		t.Errorf("expected zero summary, got %+v", s)
	}
	if s.SurvivorsPerPhase == nil || s.SamplesPerSkill == nil {
		t.Error("expected non-nil maps")
	}
}

func TestSummarize_AggregatesPhasesAndDispatches(t *testing.T) {
	// GIVEN a trace of two phases and three dispatches
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	st.RecordPhase(PhaseRecord{Phase: "baseline", Selected: make([]CandidateScore, 2)})
	st.RecordPhase(PhaseRecord{Phase: "top-half", Selected: make([]CandidateScore, 1), Eliminated: []string{"b"}, CutoffMargin: 0.5})
	st.RecordPhase(PhaseRecord{Phase: "top-10", Selected: make([]CandidateScore, 1), Eliminated: []string{"b"}, CutoffMargin: 0.1})
	st.RecordDispatch(DispatchRecord{SkillID: "a", Collected: 100})
	st.RecordDispatch(DispatchRecord{SkillID: "b", Collected: 100})
	st.RecordDispatch(DispatchRecord{SkillID: "a", Collected: 100})

	// WHEN summarized
	s := Summarize(st)

	// THEN counts and margins reflect the records
	if s.TotalPhases != 3 {
		t.Errorf("TotalPhases = %d, want 3", s.TotalPhases)
	}
	if s.TotalDispatches != 3 || s.TotalSamples != 300 {
		t.Errorf("dispatches/samples = %d/%d, want 3/300", s.TotalDispatches, s.TotalSamples)
	}
	if s.SamplesPerSkill["a"] != 200 || s.SamplesPerSkill["b"] != 100 {
		t.Errorf("SamplesPerSkill = %v", s.SamplesPerSkill)
	}
	if s.SurvivorsPerPhase["baseline"] != 2 || s.SurvivorsPerPhase["top-half"] != 1 {
		t.Errorf("SurvivorsPerPhase = %v", s.SurvivorsPerPhase)
	}
	// the baseline phase eliminated nothing and is excluded from margins
	if math.Abs(s.MeanCutoffMargin-0.3) > 1e-9 {
		t.Errorf("MeanCutoffMargin = %v, want 0.3", s.MeanCutoffMargin)
	}
	if s.MinCutoffMargin != 0.1 {
		t.Errorf("MinCutoffMargin = %v, want 0.1", s.MinCutoffMargin)
	}
}
