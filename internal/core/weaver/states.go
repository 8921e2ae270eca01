package weaver

// States are transient conditions layered over a Profile. Each value lives in [0, 1].
type States struct {
	// Negative
	Damaged   float64 `json:"damaged" yaml:"damaged"`
	Corrupted float64 `json:"corrupted" yaml:"corrupted"`
	Stressed  float64 `json:"stressed" yaml:"stressed"`
	Neglected float64 `json:"neglected" yaml:"neglected"`

	// Positive
	Enhanced    float64 `json:"enhanced" yaml:"enhanced"`
	Experienced float64 `json:"experienced" yaml:"experienced"`
	Connected   float64 `json:"connected" yaml:"connected"`
	Prestigious float64 `json:"prestigious" yaml:"prestigious"`
	Blessed     float64 `json:"blessed" yaml:"blessed"`
	Adapted     float64 `json:"adapted" yaml:"adapted"`
}

// Clamp forces every value back into [0, 1]. NaN becomes 0.
func (s *States) Clamp() {
	for _, v := range s.values() {
		*v = clampUnit(*v)
	}
}

// Clamped returns a clamped copy of s.
func (s States) Clamped() States {
	s.Clamp()
	return s
}

// Negative returns the four negative states in declaration order.
func (s States) Negative() [4]float64 {
	return [4]float64{s.Damaged, s.Corrupted, s.Stressed, s.Neglected}
}

// Positive returns the six positive states in declaration order.
func (s States) Positive() [6]float64 {
	return [6]float64{s.Enhanced, s.Experienced, s.Connected, s.Prestigious, s.Blessed, s.Adapted}
}

func (s *States) values() [10]*float64 {
	return [10]*float64{
		&s.Damaged, &s.Corrupted, &s.Stressed, &s.Neglected,
		&s.Enhanced, &s.Experienced, &s.Connected, &s.Prestigious, &s.Blessed, &s.Adapted,
	}
}

func clampUnit(v float64) float64 {
	switch {
	case v >= 1:
		return 1
	case v > 0:
		return v
	default:
		// also catches NaN, which fails every comparison
		return 0
	}
}
