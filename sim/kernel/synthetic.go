package kernel

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"

	"github.com/racesim/skill-ranker/sim"
)

// Synthetic models each race as the length a skill set gains over the
// baseline horse. Every skill has a mean effect (configured, or derived from
// its id) that applies when the skill triggers; trigger odds rise with Wisdom
// and the effect scales with course distance, mood and going. Gaussian noise
// models everything else. Results depend only on the request, so a given
// seed always reproduces the same outcomes.
type Synthetic struct {
	noise   float64
	effects map[string]float64
}

// NewSynthetic creates a Synthetic kernel with noise as the per-trial
// standard deviation (in lengths) and optional per-skill mean effects.
func NewSynthetic(noise float64, effects map[string]float64) (*Synthetic, error) {
	if noise < 0 || math.IsNaN(noise) || math.IsInf(noise, 0) {
		return nil, &sim.ConfigurationError{Field: "kernel.noise", Reason: fmt.Sprintf("must be a finite non-negative number, got %v", noise)}
	}
	copied := make(map[string]float64, len(effects))
	for id, e := range effects {
		copied[id] = e
	}
	return &Synthetic{noise: noise, effects: copied}, nil
}

// Simulate runs req.NumSimulations independent trials seeded by req.Options.Seed.
func (k *Synthetic) Simulate(req sim.KernelRequest) ([]float64, error) {
	if req.NumSimulations < 0 {
		return nil, fmt.Errorf("negative simulation count %d", req.NumSimulations)
	}
	if req.Course.Turn == nil {
		return nil, fmt.Errorf("course %d has no turn", req.Course.ID)
	}

	added, removed := skillDiff(req.Baseline.Skills, req.Candidate.Skills)
	scale := conditionScale(req.Course, req.Race)
	trigger := triggerChance(req.Candidate.Wisdom)

	rng := rand.New(rand.NewSource(req.Options.Seed))
	results := make([]float64, req.NumSimulations)
	for i := range results {
		gain := 0.0
		for _, id := range added {
			if rng.Float64() < trigger {
				gain += k.effect(id)
			}
		}
		for _, id := range removed {
			if rng.Float64() < trigger {
				gain -= k.effect(id)
			}
		}
		results[i] = gain*scale + rng.NormFloat64()*k.noise
	}
	return results, nil
}

// effect returns the mean length gained when skill id triggers.
func (k *Synthetic) effect(id string) float64 {
	if e, ok := k.effects[id]; ok {
		return e
	}
	h := fnv.New32a()
	h.Write([]byte(id))
	return 0.2 + float64(h.Sum32()%2300)/1000
}

// skillDiff returns the skills only the candidate has and those only the
// baseline has.
func skillDiff(baseline, candidate []string) (added, removed []string) {
	inBase := make(map[string]bool, len(baseline))
	for _, s := range baseline {
		inBase[s] = true
	}
	inCand := make(map[string]bool, len(candidate))
	for _, s := range candidate {
		inCand[s] = true
		if !inBase[s] {
			added = append(added, s)
		}
	}
	for _, s := range baseline {
		if !inCand[s] {
			removed = append(removed, s)
		}
	}
	return added, removed
}

// triggerChance maps Wisdom to the probability a skill activates.
func triggerChance(wisdom int) float64 {
	p := 1 - 90/math.Max(float64(wisdom), 1)
	return math.Min(0.95, math.Max(0.2, p))
}

func conditionScale(course sim.Course, race sim.RaceParameters) float64 {
	scale := 1.0
	if course.Distance > 0 {
		scale *= float64(course.Distance) / 2000
	}
	scale *= 1 + 0.02*float64(race.Mood)
	switch race.Ground {
	case 3:
		scale *= 0.95
	case 4:
		scale *= 0.9
	}
	if race.Weather == 3 || race.Weather == 4 {
		scale *= 0.97
	}
	return scale
}
