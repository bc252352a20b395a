// Package trace provides decision-trace recording for successive-elimination
// ranking runs. This package has no dependencies on sim/; it stores pure data types.
package trace

// CandidateScore captures a candidate's standing when a phase selected it.
type CandidateScore struct {
	SkillID        string
	Name           string
	Score          float64 // mean length per cost at selection time
	NumSimulations int
}

// PhaseRecord captures one phase's selection decision.
type PhaseRecord struct {
	Phase      string
	Index      int
	Increment  int
	Selected   []CandidateScore // in rank order, best first
	Eliminated []string         // skill IDs ranked but not selected
	// CutoffMargin is score(last selected) - score(best eliminated); 0 if
	// nothing was eliminated.
	CutoffMargin float64
}

// DispatchRecord captures one task sent to a worker.
type DispatchRecord struct {
	Phase        string
	SkillID      string
	BaseSeed     int64
	Requested    int
	Collected    int
	Combinations int
}
