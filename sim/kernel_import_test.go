package sim_test

// Blank import triggers sim/kernel's init(), which registers NewKernelFunc.
// This allows package sim's internal test files to build kernels through
// NewKernel without directly importing sim/kernel (which would create an import cycle).
import _ "github.com/racesim/skill-ranker/sim/kernel"
