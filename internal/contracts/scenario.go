package contracts

// Scenario is an optional what-if transformation applied uniformly to every
// selected target before scoring. A nil scenario means pass-through.
type Scenario struct {
	Name string `json:"name"`

	// TargetYear, when set, overrides the target year of every selected
	// target (e.g. "all targets brought forward to 2030").
	TargetYear *int `json:"target_year,omitempty"`

	// ReductionBoost, when set, is added to every target's reduction
	// ambition. The result is capped at 1.0 (full reduction).
	ReductionBoost *float64 `json:"reduction_boost,omitempty"`
}

// Adjust rewrites a single target according to the scenario.
func (s *Scenario) Adjust(t TargetRecord) TargetRecord {
	if s == nil {
		return t
	}
	if s.TargetYear != nil {
		t.TargetYear = *s.TargetYear
	}
	if s.ReductionBoost != nil {
		t.Reduction += *s.ReductionBoost
		if t.Reduction > 1.0 {
			t.Reduction = 1.0
		}
	}
	return t
}
