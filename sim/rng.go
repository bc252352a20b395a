package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey is the seed a ranking run is keyed on. Deterministic runs
// with the same key and configuration shuffle the same condition arrays and
// hand every dispatch the same base seed.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// Random streams drawn during a run. Each has its own source so that, for
// example, randomizing one more condition never shifts the dispatch seeds.
const (
	// SubsystemConditions shuffles the weighted season, weather and ground arrays.
	SubsystemConditions = "conditions"

	// SubsystemSeeds draws per-dispatch base seeds when the run is not deterministic.
	SubsystemSeeds = "seeds"
)

// PartitionedRNG splits a SimulationKey into independent named streams.
// The source behind stream name is seeded with key XOR fnv1a64(name).
//
// Not safe for concurrent use. The scheduler draws seeds while building a
// phase's tasks, before any worker starts.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the stream for name, creating it on first use. Later
// calls with the same name continue the same stream.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// Conditions returns the stream that shuffles weighted condition arrays.
func (p *PartitionedRNG) Conditions() *rand.Rand {
	return p.ForSubsystem(SubsystemConditions)
}

// Seeds returns the stream that draws dispatch base seeds.
func (p *PartitionedRNG) Seeds() *rand.Rand {
	return p.ForSubsystem(SubsystemSeeds)
}

// Key returns the run's SimulationKey.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
