package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/racesim/skill-ranker/sim"
	"github.com/racesim/skill-ranker/sim/trace"
)

// printResults writes the final ranking as an aligned table, best first.
func printResults(w io.Writer, results []sim.SkillResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tSkill\tID\tCost\tN\tMean\tMedian\tMean/Cost×1000\tMin\tMax\tCI low\tCI high\t")
	for i, r := range results {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t\n",
			i+1, r.Skill, r.SkillID, r.Cost, r.NumSimulations,
			r.MeanLength, r.MedianLength, r.MeanLengthPerCost*1000,
			r.MinLength, r.MaxLength, r.CILower, r.CIUpper)
	}
	return tw.Flush()
}

// printJSON writes results as indented JSON.
func printJSON(w io.Writer, results []sim.SkillResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printTraceSummary writes the phase-by-phase survivor counts and sample totals.
func printTraceSummary(w io.Writer, tr *trace.SimulationTrace) {
	if tr == nil {
		return
	}
	s := trace.Summarize(tr)
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "Phases: %d\n", s.TotalPhases)
	for _, p := range tr.Phases {
		fmt.Fprintf(w, "  %-10s selected %d, eliminated %d\n", p.Phase, s.SurvivorsPerPhase[p.Phase], len(p.Eliminated))
	}
	fmt.Fprintf(w, "Dispatches: %d\n", s.TotalDispatches)
	fmt.Fprintf(w, "Samples: %d\n", s.TotalSamples)
	if s.MeanCutoffMargin != 0 || s.MinCutoffMargin != 0 {
		fmt.Fprintf(w, "Cutoff margin: mean %.6f, min %.6f\n", s.MeanCutoffMargin, s.MinCutoffMargin)
	}
	ids := make([]string, 0, len(s.SamplesPerSkill))
	for id := range s.SamplesPerSkill {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(w, "  %s: %d samples\n", id, s.SamplesPerSkill[id])
	}
}
