package sim

// Course describes one track layout. Fields other than Turn pass through to
// the kernel untouched.
type Course struct {
	ID           int       `yaml:"id" json:"id"`
	Name         string    `yaml:"name,omitempty" json:"name,omitempty"`
	Distance     int       `yaml:"distance" json:"distance"`
	Surface      string    `yaml:"surface,omitempty" json:"surface,omitempty"`
	Turn         *int      `yaml:"turn" json:"turn"` // required; a course without it is rejected
	Corners      []Segment `yaml:"corners,omitempty" json:"corners,omitempty"`
	Straights    []Segment `yaml:"straights,omitempty" json:"straights,omitempty"`
	Slopes       []Slope   `yaml:"slopes,omitempty" json:"slopes,omitempty"`
	CourseWidth  float64   `yaml:"course_width,omitempty" json:"course_width,omitempty"`
	HorseLane    float64   `yaml:"horse_lane,omitempty" json:"horse_lane,omitempty"`
	LaneChangeAc float64   `yaml:"lane_change_acceleration,omitempty" json:"lane_change_acceleration,omitempty"`
}

// Segment is a [Start, Start+Length) span of a course in meters.
type Segment struct {
	Start  float64 `yaml:"start" json:"start"`
	Length float64 `yaml:"length" json:"length"`
}

// Slope is a segment with a gradient (positive = uphill).
type Slope struct {
	Start  float64 `yaml:"start" json:"start"`
	Length float64 `yaml:"length" json:"length"`
	Slope  float64 `yaml:"slope" json:"slope"`
}

// RaceParameters are the race conditions handed to the kernel. The scheduler
// overwrites Mood, Season, Weather and Ground per combination when those
// dimensions are randomized.
type RaceParameters struct {
	Mood    int `yaml:"mood" json:"mood"`
	Season  int `yaml:"season" json:"season"`
	Weather int `yaml:"weather" json:"weather"`
	Ground  int `yaml:"ground" json:"ground"`
	Time    int `yaml:"time,omitempty" json:"time,omitempty"`
	Grade   int `yaml:"grade,omitempty" json:"grade,omitempty"`
}

// Horse holds the base attributes of the simulated runner.
type Horse struct {
	Name             string   `yaml:"name,omitempty" json:"name,omitempty"`
	Speed            int      `yaml:"speed" json:"speed"`
	Stamina          int      `yaml:"stamina" json:"stamina"`
	Power            int      `yaml:"power" json:"power"`
	Guts             int      `yaml:"guts" json:"guts"`
	Wisdom           int      `yaml:"wisdom" json:"wisdom"`
	Strategy         string   `yaml:"strategy" json:"strategy"`
	DistanceAptitude string   `yaml:"distance_aptitude" json:"distance_aptitude"`
	SurfaceAptitude  string   `yaml:"surface_aptitude" json:"surface_aptitude"`
	StrategyAptitude string   `yaml:"strategy_aptitude" json:"strategy_aptitude"`
	Skills           []string `yaml:"skills,omitempty" json:"skills,omitempty"`
}

// withSkills returns a copy of h carrying skills instead of its own list.
func (h Horse) withSkills(skills []string) Horse {
	h.Skills = append([]string(nil), skills...)
	return h
}

// SimOptions are kernel options. Seed is set per kernel call; Params pass
// through opaquely.
type SimOptions struct {
	Seed   int64             `yaml:"seed" json:"seed"`
	Params map[string]string `yaml:"params,omitempty" json:"params,omitempty"`
}

// KernelRequest is one call across the simulation boundary.
type KernelRequest struct {
	NumSimulations int
	Course         Course
	Race           RaceParameters
	Baseline       Horse
	Candidate      Horse
	Options        SimOptions
}

// Kernel is the opaque race simulation engine. Implementations must return
// exactly NumSimulations outcomes and be deterministic for a given seed.
type Kernel interface {
	Simulate(req KernelRequest) ([]float64, error)
}

// KernelConfig selects and parameterizes a kernel implementation.
type KernelConfig struct {
	Type    string             `yaml:"type" json:"type" default:"synthetic"`
	Noise   float64            `yaml:"noise" json:"noise" default:"0.6"`
	Effects map[string]float64 `yaml:"effects,omitempty" json:"effects,omitempty"`
}

// NewKernelFunc builds a Kernel from its config. Set by sim/kernel's init();
// importing that package is what makes kernels available.
var NewKernelFunc func(cfg KernelConfig) (Kernel, error)

// NewKernel builds a kernel through the registered factory.
func NewKernel(cfg KernelConfig) (Kernel, error) {
	if NewKernelFunc == nil {
		return nil, configErrorf("kernel", "no kernel implementation registered (import sim/kernel)")
	}
	return NewKernelFunc(cfg)
}
