package sim

// CandidateSpec describes one skill to evaluate, as resolved upstream.
// Only Cost is interpreted, as the efficiency denominator.
type CandidateSpec struct {
	Name     string `yaml:"name" json:"name" validate:"required"`
	SkillID  string `yaml:"skill_id" json:"skill_id" validate:"required"`
	Cost     int    `yaml:"cost" json:"cost" validate:"gt=0"`
	Discount int    `yaml:"discount" json:"discount" validate:"gte=0,lte=100"`
}

// Candidate is one skill under evaluation together with every trial outcome
// collected for it so far. Owned by the Scheduler; RawResults only grows.
type Candidate struct {
	Name       string
	SkillID    string
	Cost       int
	Discount   int
	RawResults []float64
}

func newCandidate(spec CandidateSpec) *Candidate {
	return &Candidate{
		Name:       spec.Name,
		SkillID:    spec.SkillID,
		Cost:       spec.Cost,
		Discount:   spec.Discount,
		RawResults: make([]float64, 0),
	}
}

// Stats recomputes the candidate's result from its accumulated samples.
func (c *Candidate) Stats(ciPercent float64) SkillResult {
	r := ComputeStats(c.RawResults, c.Cost, c.Discount, c.Name, ciPercent)
	r.SkillID = c.SkillID
	return r
}

// SkillResult summarizes a candidate's samples. It is derived on demand and
// never stored; NumSimulations always equals the number of samples it was
// computed from.
type SkillResult struct {
	Skill             string  `json:"skill"`
	SkillID           string  `json:"skillId,omitempty"`
	Cost              int     `json:"cost"`
	Discount          int     `json:"discount"`
	NumSimulations    int     `json:"numSimulations"`
	MeanLength        float64 `json:"meanLength"`
	MedianLength      float64 `json:"medianLength"`
	MeanLengthPerCost float64 `json:"meanLengthPerCost"`
	MinLength         float64 `json:"minLength"`
	MaxLength         float64 `json:"maxLength"`
	CILower           float64 `json:"ciLower"`
	CIUpper           float64 `json:"ciUpper"`
}
