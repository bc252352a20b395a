package sim

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"
)

// DefaultCIPercent is the confidence level used when none is configured.
const DefaultCIPercent = 95.0

// ComputeStats summarizes raw trial outcomes for one candidate.
//
// The bounds are nearest-rank order statistics on the sorted samples
// (zero-based, no interpolation):
//
//	lowerIdx = floor(N * (100-ci)/2 / 100)
//	upperIdx = floor(N * (100 - (100-ci)/2) / 100), clamped to N-1
//
// They are good enough to compare candidates but are not a rigorous interval.
// A non-positive cost yields MeanLengthPerCost 0 so the ranking key is never
// NaN or Inf. ComputeStats never mutates raw and keeps no state between calls.
func ComputeStats(raw []float64, cost, discount int, name string, ciPercent float64) SkillResult {
	result := summarize(raw, name, ciPercent)
	result.Cost = cost
	result.Discount = discount
	if result.NumSimulations > 0 {
		result.MeanLengthPerCost = lengthPerCost(result.MeanLength, cost, name)
	}
	return result
}

// summarize computes every cost-independent field of a SkillResult.
func summarize(raw []float64, name string, ciPercent float64) SkillResult {
	result := SkillResult{Skill: name, NumSimulations: len(raw)}
	n := len(raw)
	if n == 0 {
		return result
	}

	sorted := make([]float64, n)
	copy(sorted, raw)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	var median float64
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	lowerIdx, upperIdx := ciIndices(n, ciPercent)

	result.MeanLength = mean
	result.MedianLength = median
	result.MinLength = sorted[0]
	result.MaxLength = sorted[n-1]
	result.CILower = sorted[lowerIdx]
	result.CIUpper = sorted[upperIdx]
	return result
}

// ciIndices returns the nearest-rank indices bounding the ci% interval.
func ciIndices(n int, ciPercent float64) (int, int) {
	tail := (100 - ciPercent) / 2
	lower := int(math.Floor(float64(n) * tail / 100))
	upper := int(math.Floor(float64(n) * (100 - tail) / 100))
	return clampIndex(lower, n), clampIndex(upper, n)
}

func clampIndex(idx, n int) int {
	if idx < 0 {
		return 0
	}
	if idx > n-1 {
		return n - 1
	}
	return idx
}

func lengthPerCost(mean float64, cost int, name string) float64 {
	if cost <= 0 {
		logrus.Warnf("skill %q has non-positive cost %d; efficiency clamped to 0", name, cost)
		return 0
	}
	v := mean / float64(cost)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// rankResults sorts results by MeanLengthPerCost descending. The sort is
// stable, so ties keep their incoming order.
func rankResults(results []SkillResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MeanLengthPerCost > results[j].MeanLengthPerCost
	})
}
