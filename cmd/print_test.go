package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racesim/skill-ranker/sim"
	"github.com/racesim/skill-ranker/sim/trace"
)

func sampleResults() []sim.SkillResult {
	return []sim.SkillResult{
		{Skill: "Corner Adept", SkillID: "200331", Cost: 160, NumSimulations: 500, MeanLength: 1.6, MeanLengthPerCost: 0.01},
		{Skill: "Straightaway Adept", SkillID: "200351", Cost: 170, NumSimulations: 100, MeanLength: 0.85, MeanLengthPerCost: 0.005},
	}
}

func TestPrintResults_RowsInRankOrder(t *testing.T) {
	// GIVEN a ranked result list
	var buf bytes.Buffer

	// WHEN printed
	require.NoError(t, printResults(&buf, sampleResults()))

	// THEN a header and one row per result appear, best first
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Mean/Cost")
	assert.Contains(t, lines[1], "Corner Adept")
	assert.Contains(t, lines[1], "10.000")
	assert.Contains(t, lines[2], "Straightaway Adept")
}

func TestPrintJSON_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, sampleResults()))

	var decoded []sim.SkillResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sampleResults(), decoded)
}

func TestPrintTraceSummary_Nil_NoOutput(t *testing.T) {
	var buf bytes.Buffer
	printTraceSummary(&buf, nil)
	assert.Empty(t, buf.String())
}

func TestPrintTraceSummary_PrintsSection(t *testing.T) {
	// GIVEN a trace with one eliminating phase
	tr := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})
	tr.RecordPhase(trace.PhaseRecord{Phase: "top-half", Selected: make([]trace.CandidateScore, 1), Eliminated: []string{"b"}, CutoffMargin: 0.002})
	tr.RecordDispatch(trace.DispatchRecord{SkillID: "a", Collected: 100})
	var buf bytes.Buffer

	// WHEN printed
	printTraceSummary(&buf, tr)

	// THEN the summary section lists phases, dispatches and samples
	output := buf.String()
	assert.Contains(t, output, "=== Trace Summary ===")
	assert.Contains(t, output, "top-half")
	assert.Contains(t, output, "Dispatches: 1")
	assert.Contains(t, output, "a: 100 samples")
	assert.Contains(t, output, "Cutoff margin")
}
