// Package kernel provides simulation kernel implementations for the skill ranker.
// The Kernel interface is defined in sim/ (parent package). This package
// provides Synthetic, a seeded stand-in for a full race physics engine.
package kernel

import (
	"fmt"

	"github.com/racesim/skill-ranker/sim"
)

// TypeSynthetic selects the Synthetic kernel.
const TypeSynthetic = "synthetic"

// New builds the kernel named by cfg.Type.
func New(cfg sim.KernelConfig) (sim.Kernel, error) {
	switch cfg.Type {
	case "", TypeSynthetic:
		return NewSynthetic(cfg.Noise, cfg.Effects)
	default:
		return nil, &sim.ConfigurationError{
			Field:  "kernel.type",
			Reason: fmt.Sprintf("unknown kernel type %q; valid: %s", cfg.Type, TypeSynthetic),
		}
	}
}
