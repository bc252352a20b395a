package sim

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"
)

// StaticData is everything a run shares across dispatches: course data,
// race parameters, the baseline horse and resolved conditions. Built once by
// NewStaticData and treated as immutable afterwards.
type StaticData struct {
	Courses  []Course
	Race     RaceParameters
	Baseline Horse
	Options  SimOptions
	Mood     MoodSetting
	Season   Condition
	Weather  Condition
	Ground   Condition
}

// ConditionConfig holds the unparsed condition values of a run config.
type ConditionConfig struct {
	Mood    string `yaml:"mood" json:"mood" default:"0"`
	Season  string `yaml:"season" json:"season" default:"spring"`
	Weather string `yaml:"weather" json:"weather" default:"sunny"`
	Ground  string `yaml:"ground" json:"ground" default:"firm"`
}

// NewStaticData validates inputs and resolves the race conditions. Weighted
// arrays for random conditions are shuffled with rng's conditions stream.
func NewStaticData(courses []Course, race RaceParameters, baseline Horse, opts SimOptions,
	conds ConditionConfig, rng *PartitionedRNG) (*StaticData, error) {
	if len(courses) == 0 {
		return nil, configErrorf("courses", "at least one course is required")
	}
	for i, c := range courses {
		if c.Turn == nil {
			return nil, configErrorf(fmt.Sprintf("courses[%d].turn", i), "course %d has no turn", c.ID)
		}
	}

	mood, err := ParseMood(conds.Mood)
	if err != nil {
		return nil, err
	}
	condRNG := rng.Conditions()
	season, err := SampleCondition(SeasonDimension, conds.Season, condRNG)
	if err != nil {
		return nil, err
	}
	weather, err := SampleCondition(WeatherDimension, conds.Weather, condRNG)
	if err != nil {
		return nil, err
	}
	ground, err := SampleCondition(GroundDimension, conds.Ground, condRNG)
	if err != nil {
		return nil, err
	}

	if !mood.IsRandom {
		race.Mood = mood.Value
	}
	if !season.IsRandom {
		race.Season = season.Value
	}
	if !weather.IsRandom {
		race.Weather = weather.Value
	}
	if !ground.IsRandom {
		race.Ground = ground.Value
	}

	return &StaticData{
		Courses:  append([]Course(nil), courses...),
		Race:     race,
		Baseline: baseline.withSkills(baseline.Skills),
		Options:  opts,
		Mood:     mood,
		Season:   season,
		Weather:  weather,
		Ground:   ground,
	}, nil
}

// SimulationTask is the payload sent to one worker. Built by
// Dispatcher.BuildTask and never modified afterwards.
type SimulationTask struct {
	SkillID        string
	Skills         []string
	Courses        []Course
	Race           RaceParameters
	Baseline       Horse
	Options        SimOptions
	NumSimulations int
	BaseSeed       int64
	Mood           MoodSetting
	Season         Condition
	Weather        Condition
	Ground         Condition
	// RawOutput asks the worker for every sample rather than a summary.
	// Dispatcher.BuildTask always sets it: the scheduler accumulates raw
	// samples across phases, so only hand-built tasks get a summary.
	RawOutput bool
}

// MergeSkills adds skillID to skills, dropping duplicates and any existing
// skill of the same group (e.g. the ○ variant when adding the ◎ one).
func MergeSkills(skills []string, skillID string) []string {
	group := SkillGroup(skillID)
	seen := make(map[string]bool, len(skills)+1)
	merged := make([]string, 0, len(skills)+1)
	for _, s := range skills {
		if seen[s] || SkillGroup(s) == group {
			continue
		}
		seen[s] = true
		merged = append(merged, s)
	}
	return append(merged, skillID)
}

// SkillGroup returns the group key of a skill id: the id without its last
// digit for numeric ids, otherwise the id itself.
func SkillGroup(id string) string {
	if len(id) < 2 || strings.IndexFunc(id, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0 {
		return id
	}
	return id[:len(id)-1]
}

// seedSource hands out dispatch base seeds. Deterministic runs derive them
// from the candidate's sample count so phases never reuse a seed range.
type seedSource struct {
	deterministic bool
	seed          int64
	rng           *rand.Rand
}

func (s *seedSource) next(c *Candidate) int64 {
	if s.deterministic {
		return s.seed + int64(len(c.RawResults))
	}
	return s.rng.Int63n(1 << 40)
}
