package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/racesim/skill-ranker/sim"
)

// RunConfig is one ranking run as read from a YAML file or an HTTP request body.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type RunConfig struct {
	Courses    []sim.Course        `yaml:"courses" json:"courses"`
	Race       sim.RaceParameters  `yaml:"race" json:"race"`
	Baseline   sim.Horse           `yaml:"baseline" json:"baseline"`
	Options    map[string]string   `yaml:"options,omitempty" json:"options,omitempty"`
	Conditions sim.ConditionConfig `yaml:"conditions" json:"conditions"`
	Candidates []sim.CandidateSpec `yaml:"candidates" json:"candidates" validate:"dive"`
	Kernel     sim.KernelConfig    `yaml:"kernel" json:"kernel"`
	Scheduler  SchedulerConfig     `yaml:"scheduler" json:"scheduler"`
}

// SchedulerConfig holds the tunables of the phase scheduler.
type SchedulerConfig struct {
	Concurrency   int     `yaml:"concurrency" json:"concurrency" validate:"gte=0"` // 0 = one worker per CPU
	CIPercent     float64 `yaml:"ci" json:"ci" default:"95" validate:"gt=0,lte=100"`
	Increment     int     `yaml:"increment" json:"increment" default:"100" validate:"gte=1"`
	Deterministic bool    `yaml:"deterministic" json:"deterministic"`
	Seed          int64   `yaml:"seed" json:"seed"`
	TraceLevel    string  `yaml:"trace_level" json:"trace_level" default:"none" validate:"oneof=none phases decisions"`
}

var validate = validator.New()

// LoadRunConfig reads and finalizes the run config at path.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	return ParseRunConfig(data)
}

// ParseRunConfig decodes YAML with strict field checking (typos are errors),
// then applies defaults and validates.
func ParseRunConfig(data []byte) (*RunConfig, error) {
	var cfg RunConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, &sim.ConfigurationError{Reason: fmt.Sprintf("parsing run config: %v", err)}
	}
	if err := finalizeRunConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// finalizeRunConfig fills default values and validates cfg in place.
func finalizeRunConfig(cfg *RunConfig) error {
	if err := defaults.Set(cfg); err != nil {
		return &sim.ConfigurationError{Reason: fmt.Sprintf("applying defaults: %v", err)}
	}
	if err := validate.Struct(cfg); err != nil {
		return toConfigurationError(err)
	}
	return nil
}

// toConfigurationError reports the first failed validation rule.
func toConfigurationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &sim.ConfigurationError{Reason: err.Error()}
	}
	fe := verrs[0]
	field := strings.TrimPrefix(fe.Namespace(), "RunConfig.")
	return &sim.ConfigurationError{Field: field, Reason: ruleMessage(fe)}
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("must be greater than %s, got %v", fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s, got %v", fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s, got %v", fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("failed validation: %s", fe.Tag())
	}
}
