package trace

// TraceLevel selects how much of a ranking run's elimination history is kept.
type TraceLevel string

const (
	// TraceLevelNone keeps nothing; the scheduler is given no trace at all.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelPhases keeps one record per phase: who was selected, with
	// which score and sample count, and who was cut.
	TraceLevelPhases TraceLevel = "phases"
	// TraceLevelDecisions additionally keeps every dispatch with its base
	// seed, so a deterministic run can be replayed task by task.
	TraceLevelDecisions TraceLevel = "decisions"
)

// IsValidTraceLevel reports whether level names a trace level. The empty
// string is accepted and means none.
func IsValidTraceLevel(level string) bool {
	switch TraceLevel(level) {
	case "", TraceLevelNone, TraceLevelPhases, TraceLevelDecisions:
		return true
	}
	return false
}

// TraceConfig says what a SimulationTrace records.
type TraceConfig struct {
	Level TraceLevel
}

// recordsDispatches reports whether per-dispatch records are kept.
func (c TraceConfig) recordsDispatches() bool {
	return c.Level == TraceLevelDecisions
}

// SimulationTrace is the elimination history of one ranking run. Phases are
// appended in schedule order; dispatches in completion order, which varies
// between runs when more than one worker is in flight.
type SimulationTrace struct {
	Config     TraceConfig
	Phases     []PhaseRecord
	Dispatches []DispatchRecord
}

// NewSimulationTrace creates an empty trace for config.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:     config,
		Phases:     make([]PhaseRecord, 0),
		Dispatches: make([]DispatchRecord, 0),
	}
}

// RecordPhase appends the selection a phase made from the current ranking.
func (st *SimulationTrace) RecordPhase(record PhaseRecord) {
	st.Phases = append(st.Phases, record)
}

// RecordDispatch appends a completed task. Ignored below TraceLevelDecisions.
func (st *SimulationTrace) RecordDispatch(record DispatchRecord) {
	if !st.Config.recordsDispatches() {
		return
	}
	st.Dispatches = append(st.Dispatches, record)
}
