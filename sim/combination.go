package sim

import "iter"

// Combination is one tuple of the race-condition cross product.
type Combination struct {
	Course  Course
	Mood    int
	Season  int
	Weather int
	Ground  int
}

// Dimensions are the per-axis value lists of the cross product.
type Dimensions struct {
	Courses  []Course
	Moods    []int
	Seasons  []int
	Weathers []int
	Grounds  []int
}

// Size returns the number of combinations in the cross product.
func (d Dimensions) Size() int {
	return len(d.Courses) * len(d.Moods) * len(d.Seasons) * len(d.Weathers) * len(d.Grounds)
}

// combination decodes index i in course → mood → season → weather → ground
// order; ground varies fastest.
func (d Dimensions) combination(i int) Combination {
	g := i % len(d.Grounds)
	i /= len(d.Grounds)
	w := i % len(d.Weathers)
	i /= len(d.Weathers)
	s := i % len(d.Seasons)
	i /= len(d.Seasons)
	m := i % len(d.Moods)
	i /= len(d.Moods)
	return Combination{
		Course:  d.Courses[i],
		Mood:    d.Moods[m],
		Season:  d.Seasons[s],
		Weather: d.Weathers[w],
		Ground:  d.Grounds[g],
	}
}

// NeedsEnumeration reports whether a task must be split across combinations:
// randomized mood, any randomized condition, or more than one course.
func NeedsEnumeration(task SimulationTask) bool {
	return task.Mood.IsRandom ||
		task.Season.IsRandom ||
		task.Weather.IsRandom ||
		task.Ground.IsRandom ||
		len(task.Courses) > 1
}

// TaskDimensions builds the cross product axes for task.
func TaskDimensions(task SimulationTask) Dimensions {
	return Dimensions{
		Courses:  task.Courses,
		Moods:    task.Mood.Values(),
		Seasons:  task.Season.Values(),
		Weathers: task.Weather.Values(),
		Grounds:  task.Ground.Values(),
	}
}

// Allocation is one combination with its sample share and seed.
type Allocation struct {
	Index   int
	Samples int
	Seed    int64
	Combination
}

// Plan splits a requested sample count across every combination.
//
// Each combination gets share = max(1, floor(S/C)); if S exceeds share*C the
// first S-share*C combinations in enumeration order get one extra. When S < C
// every combination still gets one sample, so the plan can exceed S.
// Seeds are baseSeed plus the samples allocated to all earlier combinations.
// Allocations are computed on demand; the cross product is never materialized.
type Plan struct {
	dims      Dimensions
	baseSeed  int64
	size      int
	share     int
	remainder int
}

// NewPlan allocates requested samples over dims starting at baseSeed.
func NewPlan(dims Dimensions, requested int, baseSeed int64) *Plan {
	size := dims.Size()
	p := &Plan{dims: dims, baseSeed: baseSeed, size: size}
	if size == 0 {
		return p
	}
	p.share = max(1, requested/size)
	if extra := requested - p.share*size; extra > 0 {
		p.remainder = extra
	}
	return p
}

// Len returns the number of combinations.
func (p *Plan) Len() int {
	return p.size
}

// Total returns the number of samples allocated across all combinations,
// which is max(requested, Len()) for a non-empty plan.
func (p *Plan) Total() int {
	return p.share*p.size + p.remainder
}

// At returns the allocation for combination i, 0 <= i < Len().
func (p *Plan) At(i int) Allocation {
	samples := p.share
	if i < p.remainder {
		samples++
	}
	offset := int64(i)*int64(p.share) + int64(min(i, p.remainder))
	return Allocation{
		Index:       i,
		Samples:     samples,
		Seed:        p.baseSeed + offset,
		Combination: p.dims.combination(i),
	}
}

// All yields every allocation in enumeration order.
func (p *Plan) All() iter.Seq[Allocation] {
	return func(yield func(Allocation) bool) {
		for i := 0; i < p.size; i++ {
			if !yield(p.At(i)) {
				return
			}
		}
	}
}
