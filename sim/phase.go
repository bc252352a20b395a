package sim

import "math"

// DefaultIncrement is the number of samples each phase adds per candidate.
const DefaultIncrement = 100

// Selector picks the candidates a phase simulates from the current ranking
// (best first).
type Selector func(ranked []SkillResult) []SkillResult

// Phase is one successive-elimination round.
type Phase struct {
	Name      string
	Select    Selector
	Increment int
}

// All selects every ranked candidate.
func All() Selector {
	return func(ranked []SkillResult) []SkillResult {
		return ranked
	}
}

// TopN selects the best min(n, N) candidates.
func TopN(n int) Selector {
	return func(ranked []SkillResult) []SkillResult {
		return ranked[:min(n, len(ranked))]
	}
}

// TopFraction selects the best ceil(N*f) candidates.
func TopFraction(f float64) Selector {
	return func(ranked []SkillResult) []SkillResult {
		k := int(math.Ceil(float64(len(ranked)) * f))
		return ranked[:min(max(k, 0), len(ranked))]
	}
}

// DefaultPhases returns the five-tier schedule: baseline for everyone, then
// the top half, top 10, top quarter and top 5, each adding DefaultIncrement
// samples.
func DefaultPhases() []Phase {
	return []Phase{
		{Name: "baseline", Select: All(), Increment: DefaultIncrement},
		{Name: "top-half", Select: TopFraction(0.5), Increment: DefaultIncrement},
		{Name: "top-10", Select: TopN(10), Increment: DefaultIncrement},
		{Name: "top-25%", Select: TopFraction(0.25), Increment: DefaultIncrement},
		{Name: "top-5", Select: TopN(5), Increment: DefaultIncrement},
	}
}
