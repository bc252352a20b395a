package trace

import (
	"testing"
)

func TestSimulationTrace_RecordPhase_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN a phase record is recorded
	st.RecordPhase(PhaseRecord{
		Phase:      "top-half",
		Index:      1,
		Increment:  100,
		Selected:   []CandidateScore{{SkillID: "200331", Score: 0.012, NumSimulations: 100}},
		Eliminated: []string{"100011"},
	})

	// THEN the trace contains one phase record with correct data
	if len(st.Phases) != 1 {
		t.Fatalf("expected 1 phase, got %d", len(st.Phases))
	}
	if st.Phases[0].Phase != "top-half" {
		t.Errorf("expected phase top-half, got %s", st.Phases[0].Phase)
	}
	if len(st.Phases[0].Eliminated) != 1 {
		t.Errorf("expected 1 eliminated, got %d", len(st.Phases[0].Eliminated))
	}
}

func TestSimulationTrace_RecordDispatch_AppendsRecord(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	st.RecordDispatch(DispatchRecord{Phase: "baseline", SkillID: "200331", BaseSeed: 7, Requested: 100, Collected: 100, Combinations: 1})

	if len(st.Dispatches) != 1 {
		t.Fatalf("expected 1 dispatch, got %d", len(st.Dispatches))
	}
	if st.Dispatches[0].BaseSeed != 7 {
		t.Errorf("expected base seed 7, got %d", st.Dispatches[0].BaseSeed)
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN multiple records are added
	st.RecordDispatch(DispatchRecord{Phase: "baseline", SkillID: "a"})
	st.RecordDispatch(DispatchRecord{Phase: "baseline", SkillID: "b"})
	st.RecordDispatch(DispatchRecord{Phase: "top-half", SkillID: "a"})

	// THEN records are in insertion order
	want := []string{"a", "b", "a"}
	for i, d := range st.Dispatches {
		if d.SkillID != want[i] {
			t.Errorf("dispatch %d: expected %s, got %s", i, want[i], d.SkillID)
		}
	}
}

func TestNewSimulationTrace_EmptySlices(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelNone})
	if st.Phases == nil || st.Dispatches == nil {
		t.Error("expected non-nil empty slices")
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"decisions", true},
		{"phases", true},
		{"", true},
		{"detailed", false},
		{"NONE", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.valid {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
		}
	}
}

func TestSimulationTrace_PhasesLevel_DropsDispatches(t *testing.T) {
	// GIVEN a trace that keeps phase selections only
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelPhases})

	// WHEN a phase and a dispatch are recorded
	st.RecordPhase(PhaseRecord{Phase: "baseline"})
	st.RecordDispatch(DispatchRecord{Phase: "baseline", SkillID: "a", Collected: 100})

	// THEN only the phase is kept
	if len(st.Phases) != 1 {
		t.Errorf("expected 1 phase, got %d", len(st.Phases))
	}
	if len(st.Dispatches) != 0 {
		t.Errorf("expected no dispatches at phases level, got %d", len(st.Dispatches))
	}
}
