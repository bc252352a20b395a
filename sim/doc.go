// Package sim ranks candidate skills by how many lengths they gain per
// skill-point cost, using successive elimination over a pluggable race
// simulation kernel.
//
// # Reading Guide
//
// Start with these three files to understand a ranking run:
//   - scheduler.go: the phase loop (rank, select, dispatch, re-rank)
//   - worker.go: task execution on short-lived workers and the dispatcher
//   - combination.go: splitting a task's samples across race-condition combinations
//
// # Architecture
//
// The sim package defines the kernel interface and the orchestration types;
// implementations live in sub-packages:
//   - sim/kernel/: simulation kernels (Synthetic)
//   - sim/trace/: decision trace recording
//
// sim/kernel registers its constructor via an init() function that sets the
// package-level factory variable NewKernelFunc.
//
// # Key Types
//   - Kernel: runs N trials for one (course, conditions, horse) request
//   - Scheduler: successive elimination over a list of Phase selectors
//   - RunLimited: bounded-concurrency execution of task factories
//   - ComputeStats: mean, median, extremes and nearest-rank interval of samples
//   - Plan: the lazy allocation of samples and seeds over combinations
package sim
