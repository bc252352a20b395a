package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalPhases       int
	TotalDispatches   int
	TotalSamples      int
	MeanCutoffMargin  float64
	MinCutoffMargin   float64
	SurvivorsPerPhase map[string]int // phase name → number of candidates selected
	SamplesPerSkill   map[string]int // skill ID → outcomes collected
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		SurvivorsPerPhase: make(map[string]int),
		SamplesPerSkill:   make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalPhases = len(st.Phases)
	margins, totalMargin := 0, 0.0
	for _, p := range st.Phases {
		summary.SurvivorsPerPhase[p.Phase] = len(p.Selected)
		if len(p.Eliminated) == 0 {
			continue
		}
		if margins == 0 || p.CutoffMargin < summary.MinCutoffMargin {
			summary.MinCutoffMargin = p.CutoffMargin
		}
		totalMargin += p.CutoffMargin
		margins++
	}
	if margins > 0 {
		summary.MeanCutoffMargin = totalMargin / float64(margins)
	}

	summary.TotalDispatches = len(st.Dispatches)
	for _, d := range st.Dispatches {
		summary.TotalSamples += d.Collected
		summary.SamplesPerSkill[d.SkillID] += d.Collected
	}

	return summary
}
