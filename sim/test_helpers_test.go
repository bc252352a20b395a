package sim

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// fixedKernel returns value for every trial, plus a per-skill offset taken
// from the last skill of the candidate horse.
type fixedKernel struct {
	value   float64
	offsets map[string]float64
}

func (k *fixedKernel) Simulate(req KernelRequest) ([]float64, error) {
	v := k.value
	if n := len(req.Candidate.Skills); n > 0 {
		v += k.offsets[req.Candidate.Skills[n-1]]
	}
	out := make([]float64, req.NumSimulations)
	for i := range out {
		out[i] = v
	}
	return out, nil
}

// recordingKernel remembers every request and returns the request's seed as
// each outcome.
type recordingKernel struct {
	mu       sync.Mutex
	requests []KernelRequest
}

func (k *recordingKernel) Simulate(req KernelRequest) ([]float64, error) {
	k.mu.Lock()
	k.requests = append(k.requests, req)
	k.mu.Unlock()
	out := make([]float64, req.NumSimulations)
	for i := range out {
		out[i] = float64(req.Options.Seed)
	}
	return out, nil
}

func (k *recordingKernel) calls() []KernelRequest {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]KernelRequest(nil), k.requests...)
}

// countingKernel tracks how many calls are in flight at once.
type countingKernel struct {
	delay    time.Duration
	inflight atomic.Int32
	peak     atomic.Int32
	total    atomic.Int32
}

func (k *countingKernel) Simulate(req KernelRequest) ([]float64, error) {
	k.total.Add(1)
	now := k.inflight.Add(1)
	for {
		peak := k.peak.Load()
		if now <= peak || k.peak.CompareAndSwap(peak, now) {
			break
		}
	}
	time.Sleep(k.delay)
	k.inflight.Add(-1)
	return make([]float64, req.NumSimulations), nil
}

var errKernelBoom = errors.New("boom")

// failingKernel fails for one skill and succeeds for everything else.
type failingKernel struct {
	failSkill string
	panics    bool
}

func (k *failingKernel) Simulate(req KernelRequest) ([]float64, error) {
	for _, s := range req.Candidate.Skills {
		if s != k.failSkill {
			continue
		}
		if k.panics {
			panic(fmt.Sprintf("kernel exploded on %s", s))
		}
		return nil, errKernelBoom
	}
	return make([]float64, req.NumSimulations), nil
}

// testTurn is a valid course direction for test courses.
var testTurn = 1

func testCourse(id int) Course {
	return Course{ID: id, Distance: 2000, Surface: "turf", Turn: &testTurn}
}

// testStatic builds fixed-condition static data over the given courses.
func testStatic(courses ...Course) *StaticData {
	if len(courses) == 0 {
		courses = []Course{testCourse(10101)}
	}
	static, err := NewStaticData(courses, RaceParameters{}, Horse{Wisdom: 1000}, SimOptions{},
		ConditionConfig{Mood: "0", Season: "spring", Weather: "sunny", Ground: "firm"},
		NewPartitionedRNG(NewSimulationKey(0)))
	if err != nil {
		panic(err)
	}
	return static
}

// testSpecs returns n candidates with ids s0..s(n-1) and cost 100.
func testSpecs(n int) []CandidateSpec {
	specs := make([]CandidateSpec, n)
	for i := range specs {
		specs[i] = CandidateSpec{
			Name:    fmt.Sprintf("Skill %d", i),
			SkillID: fmt.Sprintf("s%d", i),
			Cost:    100,
		}
	}
	return specs
}

// collectEvents returns a sink and a getter for everything it received.
func collectEvents() (EventSink, func() []Event) {
	var mu sync.Mutex
	var events []Event
	sink := func(e Event) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	}
	return sink, func() []Event {
		mu.Lock()
		defer mu.Unlock()
		return append([]Event(nil), events...)
	}
}

func eventsOfType(events []Event, typ EventType) []Event {
	var out []Event
	for _, e := range events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}
