package sim

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

// WorkerOutput is what a worker sends back on success: every sample when the
// task asked for raw output, otherwise a summary.
type WorkerOutput struct {
	Raw     []float64
	Summary *SkillResult
}

// workerMessage is the worker → dispatcher protocol.
type workerMessage struct {
	Success bool
	Result  WorkerOutput
	Error   string
}

// worker is an isolated goroutine that runs one task and exits.
type worker struct {
	inbox  chan SimulationTask
	outbox chan workerMessage
	quit   chan struct{}
}

func startWorker(kernel Kernel, ciPercent float64) *worker {
	w := &worker{
		inbox:  make(chan SimulationTask, 1),
		outbox: make(chan workerMessage, 1),
		quit:   make(chan struct{}),
	}
	go w.loop(kernel, ciPercent)
	return w
}

func (w *worker) loop(kernel Kernel, ciPercent float64) {
	for {
		select {
		case <-w.quit:
			return
		case task := <-w.inbox:
			w.outbox <- execute(kernel, task, ciPercent)
		}
	}
}

// terminate stops the worker. Safe to call once.
func (w *worker) terminate() {
	close(w.quit)
}

// execute runs task against kernel and never panics: a crash inside the
// kernel is reported as a failure message.
func execute(kernel Kernel, task SimulationTask, ciPercent float64) (msg workerMessage) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Debugf("worker panic for skill %s: %v\n%s", task.SkillID, r, debug.Stack())
			msg = workerMessage{Error: fmt.Sprintf("worker crashed: %v", r)}
		}
	}()

	raw, err := RunTask(kernel, task)
	if err != nil {
		return workerMessage{Error: err.Error()}
	}
	if task.RawOutput {
		return workerMessage{Success: true, Result: WorkerOutput{Raw: raw}}
	}
	summary := summarize(raw, task.SkillID, ciPercent)
	return workerMessage{Success: true, Result: WorkerOutput{Summary: &summary}}
}

// RunTask executes every kernel call a task needs and concatenates the
// outcomes. Tasks without randomized or multi-valued dimensions take a single
// call with the full sample count.
func RunTask(kernel Kernel, task SimulationTask) ([]float64, error) {
	candidate := task.Baseline.withSkills(task.Skills)

	if !NeedsEnumeration(task) {
		opts := task.Options
		opts.Seed = task.BaseSeed
		return simulate(kernel, KernelRequest{
			NumSimulations: task.NumSimulations,
			Course:         task.Courses[0],
			Race:           task.Race,
			Baseline:       task.Baseline,
			Candidate:      candidate,
			Options:        opts,
		})
	}

	plan := NewPlan(TaskDimensions(task), task.NumSimulations, task.BaseSeed)
	results := make([]float64, 0, plan.Total())
	for alloc := range plan.All() {
		race := task.Race
		race.Mood = alloc.Mood
		race.Season = alloc.Season
		race.Weather = alloc.Weather
		race.Ground = alloc.Ground
		opts := task.Options
		opts.Seed = alloc.Seed

		out, err := simulate(kernel, KernelRequest{
			NumSimulations: alloc.Samples,
			Course:         alloc.Course,
			Race:           race,
			Baseline:       task.Baseline,
			Candidate:      candidate,
			Options:        opts,
		})
		if err != nil {
			return nil, fmt.Errorf("combination %d: %w", alloc.Index, err)
		}
		results = append(results, out...)
	}
	return results, nil
}

func simulate(kernel Kernel, req KernelRequest) ([]float64, error) {
	out, err := kernel.Simulate(req)
	if err != nil {
		return nil, err
	}
	if len(out) != req.NumSimulations {
		return nil, fmt.Errorf("kernel returned %d results, want %d", len(out), req.NumSimulations)
	}
	return out, nil
}

// Dispatcher builds simulation tasks for candidates and runs each on its own
// short-lived worker.
type Dispatcher struct {
	kernel    Kernel
	static    *StaticData
	ciPercent float64
}

// NewDispatcher creates a Dispatcher for one run.
func NewDispatcher(kernel Kernel, static *StaticData, ciPercent float64) *Dispatcher {
	return &Dispatcher{kernel: kernel, static: static, ciPercent: ciPercent}
}

// BuildTask assembles the payload for simulating samples trials of c. The
// task always asks for raw output.
func (d *Dispatcher) BuildTask(c *Candidate, samples int, baseSeed int64) SimulationTask {
	s := d.static
	return SimulationTask{
		SkillID:        c.SkillID,
		Skills:         MergeSkills(s.Baseline.Skills, c.SkillID),
		Courses:        s.Courses,
		Race:           s.Race,
		Baseline:       s.Baseline,
		Options:        s.Options,
		NumSimulations: samples,
		BaseSeed:       baseSeed,
		Mood:           s.Mood,
		Season:         s.Season,
		Weather:        s.Weather,
		Ground:         s.Ground,
		RawOutput:      true,
	}
}

// errWorkerReported wraps a failure message received from a worker.
var errWorkerReported = errors.New("worker reported failure")

// Dispatch sends task to a fresh worker and waits for its answer. The worker
// is terminated before Dispatch returns, whatever the outcome.
func (d *Dispatcher) Dispatch(task SimulationTask) (WorkerOutput, error) {
	w := startWorker(d.kernel, d.ciPercent)
	defer w.terminate()

	w.inbox <- task
	msg := <-w.outbox
	if !msg.Success {
		return WorkerOutput{}, &WorkerFailure{
			SkillID: task.SkillID,
			Err:     fmt.Errorf("%w: %s", errWorkerReported, msg.Error),
		}
	}
	return msg.Result, nil
}
