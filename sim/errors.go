package sim

import (
	"errors"
	"fmt"
)

// ErrNoCandidates is returned when no usable candidate remains after upstream
// filtering. Reported before any simulation is dispatched.
var ErrNoCandidates = errors.New("no candidates to simulate")

// ConfigurationError reports a missing or invalid input detected before any
// simulation starts. A run that fails with it has performed no work.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "invalid configuration: " + e.Reason
	}
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// configErrorf builds a ConfigurationError for field.
func configErrorf(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// WorkerFailure reports that the worker simulating one candidate returned an
// error or crashed. It aborts the whole run; there is no per-candidate retry.
type WorkerFailure struct {
	SkillID string
	Phase   string
	Err     error
}

func (e *WorkerFailure) Error() string {
	if e.Phase == "" {
		return fmt.Sprintf("worker for skill %s failed: %v", e.SkillID, e.Err)
	}
	return fmt.Sprintf("worker for skill %s failed in phase %s: %v", e.SkillID, e.Phase, e.Err)
}

func (e *WorkerFailure) Unwrap() error {
	return e.Err
}
